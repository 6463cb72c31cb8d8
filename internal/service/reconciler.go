package service

import (
	"context"
	"time"

	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/metrics"
	"github.com/vmhub/videomakers-backend/internal/processor"
)

// Reconciler varre intents pendentes que ficaram para trás (processo
// morto entre a autorização e a escrita local), cancela a autorização
// no processador quando conhecida e marca o intent como failed.
// Autorizações sem provider_intent_id expiram sozinhas no processador.
type Reconciler struct {
	payments  PaymentRepositoryAPI
	processor processor.EscrowProcessor
	metrics   *metrics.PlatformMetrics
	interval  time.Duration
	olderThan time.Duration
}

// NewReconciler cria o reconciliador de intents.
func NewReconciler(payments PaymentRepositoryAPI, proc processor.EscrowProcessor, m *metrics.PlatformMetrics, interval, olderThan time.Duration) *Reconciler {
	return &Reconciler{
		payments:  payments,
		processor: proc,
		metrics:   m,
		interval:  interval,
		olderThan: olderThan,
	}
}

// Run roda o laço de reconciliação até o contexto ser cancelado.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	intents, err := r.payments.ListStaleIntents(ctx, r.olderThan)
	if err != nil {
		logger.Log.WithError(err).Error("reconciler: falha ao listar intents pendentes")
		return
	}
	if len(intents) == 0 {
		return
	}

	logger.Log.WithField("count", len(intents)).Warn("reconciler: intents pendentes antigos encontrados")

	for _, intent := range intents {
		if intent.ProviderIntentID != nil {
			if err := r.processor.Cancel(ctx, *intent.ProviderIntentID); err != nil {
				if r.metrics != nil {
					r.metrics.RecordProcessorError("cancel")
				}
				logger.Log.WithError(err).WithField("intent_id", intent.ID).
					Error("reconciler: falha ao cancelar autorização órfã")
				continue
			}
		}

		if err := r.payments.FailIntent(ctx, intent.ID, "expirado pela reconciliação"); err != nil {
			logger.Log.WithError(err).WithField("intent_id", intent.ID).
				Error("reconciler: falha ao marcar intent como failed")
			continue
		}

		logger.Log.WithFields(map[string]interface{}{
			"intent_id": intent.ID,
			"job_id":    intent.JobID,
		}).Info("reconciler: intent pendente encerrado")
	}
}
