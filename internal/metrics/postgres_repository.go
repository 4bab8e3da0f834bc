package metrics

import (
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of Postgres repository operations.",
	}, []string{"operation", "network", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Postgres repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "network", "status"})
	postgresRepositoryRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "postgres_repository",
		Name:      "rows_total",
		Help:      "Rows submitted to and inserted by batch writes.",
	}, []string{"table", "network", "kind"})
)

// PostgresRepository tracks metrics for Postgres repository operations.
type PostgresRepository struct {
	network model.Network
}

func NewPostgresRepository(network model.Network) *PostgresRepository {
	if network == "" {
		network = "unknown"
	}
	return &PostgresRepository{network: network}
}

// Observe records duration and status of a repository operation.
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	postgresRepositoryRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveRows records how many rows a batch carried and how many were new.
func (m PostgresRepository) ObserveRows(table string, submitted, inserted int64) {
	postgresRepositoryRows.WithLabelValues(table, string(m.network), "submitted").Add(float64(submitted))
	postgresRepositoryRows.WithLabelValues(table, string(m.network), "inserted").Add(float64(inserted))
}
