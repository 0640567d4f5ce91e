package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"lawdesk/internal/db"
	"lawdesk/internal/models"
)

var (
	queryOutcomeDesc = prometheus.NewDesc(
		"lawdesk_query_outcomes_total",
		"Total logged queries by topic and outcome",
		[]string{"topic", "outcome"},
		nil,
	)

	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lawdesk_resolutions_total",
		Help: "Questions answered in this process, by answer source",
	}, []string{"source"})

	upstreamAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lawdesk_upstream_attempts_total",
		Help: "Generative API attempts by result",
	}, []string{"result"})

	upstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lawdesk_upstream_duration_seconds",
		Help:    "Latency of individual generative API attempts",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
	})
)

// QueryCollector is a custom Prometheus collector that reads query outcome
// counts from the database on each scrape.
type QueryCollector struct {
	db     *db.DB
	logger *zap.Logger
}

// Describe sends the metric descriptor to the channel.
func (c *QueryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- queryOutcomeDesc
}

// Collect queries the database for outcome counts and emits them as counters.
func (c *QueryCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.GetQueryOutcomeCounts(context.Background())
	if err != nil {
		c.logger.Error("failed to collect query outcome metrics", zap.Error(err))
		return
	}
	for _, oc := range counts {
		ch <- prometheus.MustNewConstMetric(
			queryOutcomeDesc,
			prometheus.CounterValue,
			float64(oc.Count),
			oc.Topic,
			oc.Outcome,
		)
	}
}

// insertTimeout bounds a single query log write.
const insertTimeout = 5 * time.Second

// QueryLogWriter persists one answered question.
type QueryLogWriter interface {
	InsertQueryLog(ctx context.Context, entry *models.QueryLog) error
}

// Recorder provides async query log recording.
type Recorder struct {
	db     QueryLogWriter
	logger *zap.Logger

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

func (r *Recorder) record(entry models.QueryLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		defer cancel()
		if err := r.db.InsertQueryLog(ctx, &entry); err != nil {
			r.logger.Error("failed to record query",
				zap.String("outcome", entry.Outcome),
				zap.String("topic", entry.Topic),
				zap.Error(err))
		}
	}()
}

// flush stops accepting entries and waits for in-flight writes.
func (r *Recorder) flush() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.pending.Wait()
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup, and only when the query log is enabled.
func Init(database *db.DB, logger *zap.Logger) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database, logger: logger}
		prometheus.MustRegister(&QueryCollector{db: database, logger: logger})
	})
}

// Flush waits for pending query log writes. Call it before closing the database;
// later resolutions are counted but no longer stored.
func Flush() {
	if recorder != nil {
		recorder.flush()
	}
}

// RecordResolution counts an answered question and asynchronously stores it
// in the query log when one is configured.
func RecordResolution(entry models.QueryLog) {
	resolutionsTotal.WithLabelValues(entry.Outcome).Inc()

	if recorder == nil {
		return
	}
	recorder.record(entry)
}

// ObserveUpstream records the result and latency of one generative API attempt.
func ObserveUpstream(err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	upstreamAttemptsTotal.WithLabelValues(result).Inc()
	upstreamDuration.Observe(elapsed.Seconds())
}
