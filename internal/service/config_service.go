package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

// ConfigRepositoryAPI expõe o registro único de configuração.
type ConfigRepositoryAPI interface {
	Get(ctx context.Context) (*models.PlatformConfig, error)
	Update(ctx context.Context, taxaComissao, valorHoraBase float64, updatedBy uuid.UUID) (*models.PlatformConfig, error)
}

// AuditWriter grava registros de auditoria de ações administrativas.
type AuditWriter interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// ConfigService expõe a configuração da plataforma com fallback
// para os valores padrão.
type ConfigService struct {
	repo  ConfigRepositoryAPI
	audit AuditWriter
}

// NewConfigService cria o serviço de configuração.
func NewConfigService(repo ConfigRepositoryAPI, audit AuditWriter) *ConfigService {
	return &ConfigService{repo: repo, audit: audit}
}

// Atual devolve a configuração vigente. Se o registro ainda não existe,
// devolve os valores padrão em vez de falhar.
func (s *ConfigService) Atual(ctx context.Context) (*models.PlatformConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrConfigNotFound) {
			return &models.PlatformConfig{
				ID:            1,
				TaxaComissao:  models.DefaultCommissionRate,
				ValorHoraBase: models.DefaultHourlyRate,
			}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Update altera a taxa de comissão e o valor/hora base. Somente admin.
// A mudança vale apenas para pagamentos futuros.
func (s *ConfigService) Update(ctx context.Context, adminID uuid.UUID, taxaComissao, valorHoraBase float64) (*models.PlatformConfig, error) {
	if taxaComissao < 0 || taxaComissao > 1 {
		return nil, apperror.New(apperror.ErrCodeValidation, "taxa_comissao deve estar entre 0 e 1")
	}
	if valorHoraBase <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "valor_hora_base deve ser positivo")
	}

	cfg, err := s.repo.Update(ctx, taxaComissao, valorHoraBase, adminID)
	if err != nil {
		return nil, err
	}

	detalhes := fmt.Sprintf("taxa_comissao=%.4f valor_hora_base=%.2f", taxaComissao, valorHoraBase)
	entry := &models.AuditLog{
		ID:       uuid.New(),
		ActorID:  &adminID,
		Acao:     "config_atualizada",
		Entidade: "platform_config",
		Detalhes: &detalhes,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		logger.Log.WithError(err).Warn("config service: falha ao gravar auditoria")
	}

	return cfg, nil
}
