package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the bot.
type Metrics struct {
	Events          *prometheus.CounterVec
	RejectedInputs  *prometheus.CounterVec
	CompletedFlows  *prometheus.CounterVec
	ConfirmedOrders prometheus.Counter
	RefusedOrders   prometheus.Counter
	CreditedTopUps  prometheus.Counter
	Notifications   *prometheus.CounterVec
	WorkerRuns      *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			Events: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Inbound user events by channel.",
			}, []string{"channel"}),
			RejectedInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_inputs_total",
				Help:      "Inputs refused by a step validator.",
			}, []string{"step"}),
			CompletedFlows: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completed_flows_total",
				Help:      "Conversations that reached their finalizer.",
			}, []string{"flow"}),
			ConfirmedOrders: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_confirmed_total",
				Help:      "Orders paid from the wallet.",
			}),
			RefusedOrders: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_refused_balance_total",
				Help:      "Order confirmations refused for insufficient balance.",
			}),
			CreditedTopUps: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topups_credited_total",
				Help:      "Wallet top-ups credited.",
			}),
			Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Outbound notifications by outcome.",
			}, []string{"status"}),
			WorkerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "worker_runs_total",
				Help:      "Background worker runs by worker and outcome.",
			}, []string{"worker", "status"}),
		}

		prometheus.MustRegister(
			metricsInstance.Events,
			metricsInstance.RejectedInputs,
			metricsInstance.CompletedFlows,
			metricsInstance.ConfirmedOrders,
			metricsInstance.RefusedOrders,
			metricsInstance.CreditedTopUps,
			metricsInstance.Notifications,
			metricsInstance.WorkerRuns,
		)
	})
	return metricsInstance
}

func (m *Metrics) EventReceived(channel string) {
	m.Events.WithLabelValues(channel).Inc()
}

func (m *Metrics) InputRejected(step string) {
	m.RejectedInputs.WithLabelValues(step).Inc()
}

func (m *Metrics) FlowCompleted(flow string) {
	m.CompletedFlows.WithLabelValues(flow).Inc()
}

func (m *Metrics) OrderConfirmed() {
	m.ConfirmedOrders.Inc()
}

func (m *Metrics) BalanceRefused() {
	m.RefusedOrders.Inc()
}

func (m *Metrics) TopUpCredited() {
	m.CreditedTopUps.Inc()
}

// NotificationSent records the outcome of one outbound notice.
func (m *Metrics) NotificationSent(err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.Notifications.WithLabelValues(status).Inc()
}

func (m *Metrics) WorkerRun(worker string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.WorkerRuns.WithLabelValues(worker, status).Inc()
}
