package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
)

func TestConfigService_Atual_FallbackParaPadroes(t *testing.T) {
	svc := NewConfigService(&fakeConfigRepo{}, &fakeAuditRepo{})

	cfg, err := svc.Atual(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultCommissionRate, cfg.TaxaComissao)
	assert.Equal(t, models.DefaultHourlyRate, cfg.ValorHoraBase)
}

func TestConfigService_Update_GravaAuditoria(t *testing.T) {
	audit := &fakeAuditRepo{}
	svc := NewConfigService(&fakeConfigRepo{}, audit)

	adminID := uuid.New()
	cfg, err := svc.Update(context.Background(), adminID, 0.15, 150)
	assert.NoError(t, err)
	assert.Equal(t, 0.15, cfg.TaxaComissao)
	assert.Equal(t, 150.0, cfg.ValorHoraBase)
	assert.Len(t, audit.entries, 1)
	assert.Equal(t, "config_atualizada", audit.entries[0].Acao)
}

func TestConfigService_Update_TaxaForaDaFaixa(t *testing.T) {
	svc := NewConfigService(&fakeConfigRepo{}, &fakeAuditRepo{})

	_, err := svc.Update(context.Background(), uuid.New(), 1.5, 120)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Update(context.Background(), uuid.New(), -0.1, 120)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Update(context.Background(), uuid.New(), 0.2, 0)
	assert.True(t, apperror.IsValidation(err))
}
