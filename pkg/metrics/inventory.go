package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics counts domain events from the order and stock workflows.
type InventoryMetrics struct {
	ordersCreated   prometheus.Counter
	statusChanges   *prometheus.CounterVec
	adjustments     *prometheus.CounterVec
	unitsAdjusted   *prometheus.CounterVec
	outboxPublished prometheus.Counter
	outboxFailed    prometheus.Counter
}

// NewInventoryMetrics registers the domain metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	m := &InventoryMetrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_orders_created_total",
			Help: "Orders committed with their items.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_order_status_changes_total",
			Help: "Order status updates by resulting status.",
		}, []string{"status"}),
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_stock_adjustments_total",
			Help: "Recorded stock transactions by type.",
		}, []string{"type"}),
		unitsAdjusted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_stock_units_adjusted_total",
			Help: "Units moved by stock transactions, by type.",
		}, []string{"type"}),
		outboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_outbox_published_total",
			Help: "Outbox events delivered to Pub/Sub.",
		}),
		outboxFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_outbox_failed_total",
			Help: "Outbox publish attempts that failed.",
		}),
	}
	reg.MustRegister(m.ordersCreated, m.statusChanges, m.adjustments, m.unitsAdjusted, m.outboxPublished, m.outboxFailed)
	return m
}

func (m *InventoryMetrics) OrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *InventoryMetrics) OrderStatusChanged(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *InventoryMetrics) StockAdjusted(kind string, quantity int) {
	if m == nil || m.adjustments == nil {
		return
	}
	kind = normalizeLabel(kind)
	m.adjustments.WithLabelValues(kind).Inc()
	m.unitsAdjusted.WithLabelValues(kind).Add(float64(quantity))
}

func (m *InventoryMetrics) OutboxPublished() {
	if m == nil || m.outboxPublished == nil {
		return
	}
	m.outboxPublished.Inc()
}

func (m *InventoryMetrics) OutboxFailed() {
	if m == nil || m.outboxFailed == nil {
		return
	}
	m.outboxFailed.Inc()
}
