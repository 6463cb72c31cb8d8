package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type JobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create insere um novo job com status open.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (id, cliente_id, titulo, descricao, categoria, endereco, cidade, estado,
			latitude, longitude, data_gravacao, duracao_horas, valor_total, valor_minimo, extras, status)
		VALUES (:id, :cliente_id, :titulo, :descricao, :categoria, :endereco, :cidade, :estado,
			:latitude, :longitude, :data_gravacao, :duracao_horas, :valor_total, :valor_minimo, :extras, :status)
	`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("job repository: create %w", err)
	}
	return nil
}

// GetByID busca o job pelo id.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return common.GetByID[models.Job](ctx, r.db, "jobs", id, ErrJobNotFound)
}

// List lista jobs pelos filtros, com total para paginação.
func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) (*models.JobListResult, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Categoria != "" {
		conditions = append(conditions, fmt.Sprintf("categoria = $%d", argIndex))
		args = append(args, filter.Categoria)
		argIndex++
	}
	if filter.Cidade != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(cidade) = LOWER($%d)", argIndex))
		args = append(args, filter.Cidade)
		argIndex++
	}
	if filter.ClienteID != nil {
		conditions = append(conditions, fmt.Sprintf("cliente_id = $%d", argIndex))
		args = append(args, *filter.ClienteID)
		argIndex++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs WHERE %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("job repository: count %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT * FROM jobs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIndex, argIndex+1)
	args = append(args, limit, offset)

	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("job repository: list %w", err)
	}

	return &models.JobListResult{Jobs: jobs, Total: total}, nil
}

// ListByVideomaker lista os jobs atribuídos a um videomaker.
func (r *JobRepository) ListByVideomaker(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var jobs []models.Job
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM jobs WHERE videomaker_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		videomakerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("job repository: list by videomaker %w", err)
	}
	return jobs, nil
}

// Update atualiza os campos editáveis de um job ainda aberto.
// Atualização condicional: se o job saiu de open, 0 linhas são afetadas.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs
		SET titulo = :titulo,
			descricao = :descricao,
			categoria = :categoria,
			endereco = :endereco,
			cidade = :cidade,
			estado = :estado,
			latitude = :latitude,
			longitude = :longitude,
			data_gravacao = :data_gravacao,
			duracao_horas = :duracao_horas,
			valor_total = :valor_total,
			valor_minimo = :valor_minimo,
			extras = :extras,
			updated_at = NOW()
		WHERE id = :id AND status = 'open'
	`
	result, err := r.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return fmt.Errorf("job repository: update %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("job repository: update rows affected %w", err)
	}
	if rows == 0 {
		return ErrJobStatusConflict
	}
	return nil
}

// UpdateStatus faz a transição condicional de status (compare-and-set).
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID uuid.UUID, from, to string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		jobID, from, to)
	if err != nil {
		return fmt.Errorf("job repository: update status %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("job repository: update status rows affected %w", err)
	}
	if rows == 0 {
		return ErrJobStatusConflict
	}
	return nil
}

// CountByStatus devolve a contagem de jobs por status (painel admin).
func (r *JobRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) AS total FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("job repository: count by status %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var total int
		if err := rows.Scan(&status, &total); err != nil {
			return nil, fmt.Errorf("job repository: count by status scan %w", err)
		}
		counts[status] = total
	}
	return counts, rows.Err()
}
