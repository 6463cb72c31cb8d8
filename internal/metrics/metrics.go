package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PlatformMetrics concentra as métricas do ciclo de jobs e pagamentos.
type PlatformMetrics struct {
	JobsCreatedTotal        prometheus.Counter
	PaymentsHeldTotal       prometheus.Counter
	PaymentsHeldAmountTotal prometheus.Counter
	PaymentsReleasedTotal   prometheus.Counter
	PaymentsRefundedTotal   prometheus.Counter
	DisputesOpenedTotal     prometheus.Counter
	ProcessorErrorsTotal    *prometheus.CounterVec
	CommissionAmountTotal   prometheus.Counter
}

// NewPlatformMetrics registra as métricas no registry default.
func NewPlatformMetrics() *PlatformMetrics {
	return &PlatformMetrics{
		JobsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobs_created_total",
			Help: "Total de jobs criados",
		}),
		PaymentsHeldTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_held_total",
			Help: "Total de pagamentos colocados em custódia",
		}),
		PaymentsHeldAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_held_amount_total",
			Help: "Soma dos valores colocados em custódia",
		}),
		PaymentsReleasedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_released_total",
			Help: "Total de pagamentos liberados ao videomaker",
		}),
		PaymentsRefundedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_refunded_total",
			Help: "Total de pagamentos reembolsados ao cliente",
		}),
		DisputesOpenedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "disputes_opened_total",
			Help: "Total de disputas abertas",
		}),
		ProcessorErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_processor_errors_total",
			Help: "Erros do processador de pagamento por operação",
		}, []string{"operation"}),
		CommissionAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "platform_commission_amount_total",
			Help: "Soma das comissões retidas pela plataforma",
		}),
	}
}

// RecordHeld registra um pagamento colocado em custódia.
func (m *PlatformMetrics) RecordHeld(valor float64) {
	m.PaymentsHeldTotal.Inc()
	m.PaymentsHeldAmountTotal.Add(valor)
}

// RecordReleased registra uma liberação e a comissão retida.
func (m *PlatformMetrics) RecordReleased(comissao float64) {
	m.PaymentsReleasedTotal.Inc()
	m.CommissionAmountTotal.Add(comissao)
}

// RecordProcessorError registra uma falha na operação indicada.
func (m *PlatformMetrics) RecordProcessorError(operation string) {
	m.ProcessorErrorsTotal.WithLabelValues(operation).Inc()
}
