package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create insere um novo usuário.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, nome, email, password_hash, role, telefone, bio, cidade, estado,
			latitude, longitude, categorias, portfolio_urls, valor_hora, ativo)
		VALUES (:id, :nome, :email, :password_hash, :role, :telefone, :bio, :cidade, :estado,
			:latitude, :longitude, :categorias, :portfolio_urls, :valor_hora, :ativo)
	`
	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return ErrEmailExists
		}
		return fmt.Errorf("user repository: create %w", err)
	}
	return nil
}

// GetByID busca o usuário pelo id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, ErrUserNotFound)
}

// GetByEmail busca o usuário pelo email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", email, ErrUserNotFound)
}

// Update atualiza os campos editáveis do perfil.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET nome = :nome,
			telefone = :telefone,
			bio = :bio,
			cidade = :cidade,
			estado = :estado,
			latitude = :latitude,
			longitude = :longitude,
			categorias = :categorias,
			portfolio_urls = :portfolio_urls,
			valor_hora = :valor_hora,
			updated_at = NOW()
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("user repository: update %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: update rows affected %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchVideomakers busca videomakers ativos pelos filtros.
// A ordenação por distância fica no serviço, depois do haversine.
func (r *UserRepository) SearchVideomakers(ctx context.Context, filter models.VideomakerFilter) ([]models.User, error) {
	conditions := []string{"role = 'videomaker'", "ativo = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Categoria != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(categorias)", argIndex))
		args = append(args, filter.Categoria)
		argIndex++
	}
	if filter.Cidade != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(cidade) = LOWER($%d)", argIndex))
		args = append(args, filter.Cidade)
		argIndex++
	}
	if filter.ValorMax != nil {
		conditions = append(conditions, fmt.Sprintf("valor_hora IS NOT NULL AND valor_hora <= $%d", argIndex))
		args = append(args, *filter.ValorMax)
		argIndex++
	}
	if filter.NotaMinima != nil {
		conditions = append(conditions, fmt.Sprintf("rating_medio >= $%d", argIndex))
		args = append(args, *filter.NotaMinima)
		argIndex++
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
		SELECT * FROM users
		WHERE %s
		ORDER BY rating_medio DESC, total_avaliacoes DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), argIndex, argIndex+1)
	args = append(args, limit, offset)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("user repository: search videomakers %w", err)
	}
	return users, nil
}

// List lista usuários para o painel administrativo.
func (r *UserRepository) List(ctx context.Context, role string, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var users []models.User
	var err error
	if role != "" {
		err = r.db.SelectContext(ctx, &users,
			`SELECT * FROM users WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			role, limit, offset)
	} else {
		err = r.db.SelectContext(ctx, &users,
			`SELECT * FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("user repository: list %w", err)
	}
	return users, nil
}

// PromoteToAdmin marca o usuário com o email informado como admin.
// Sem correspondência não é erro: a conta ainda pode não existir.
func (r *UserRepository) PromoteToAdmin(ctx context.Context, email string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE email = $1 AND role <> $2`,
		email, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("user repository: promote to admin %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("user repository: promote to admin rows affected %w", err)
	}
	return rows > 0, nil
}

// SetAtivo ativa ou desativa um usuário (ação administrativa).
func (r *UserRepository) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET ativo = $2, updated_at = NOW() WHERE id = $1`, id, ativo)
	if err != nil {
		return fmt.Errorf("user repository: set ativo %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
