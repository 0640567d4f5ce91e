// Package resolver answers a free-text legal question from the canned topic
// table, or from the generative API when no topic keyword matches.
package resolver

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lawdesk/internal/metrics"
	"lawdesk/internal/models"
	"lawdesk/internal/topics"
	"lawdesk/internal/validation"
)

// DiagnosticQuestion is sent by Ping.
const DiagnosticQuestion = "Explain the Right to Information Act briefly"

// Generator produces an answer for a question the topic table cannot answer.
type Generator interface {
	Generate(ctx context.Context, question string) (string, error)
}

// Cache stores generated answers between requests.
type Cache interface {
	Lookup(ctx context.Context, question string) (string, bool)
	Store(ctx context.Context, question, answer string)
}

// Answer is the outcome of resolving one question.
type Answer struct {
	HTML     string
	Source   string // One of the models.Outcome* constants
	Topic    string // Set when Source is models.OutcomeTopic
	Attempts int    // Upstream calls made
}

// Resolver is safe for concurrent use; all of its state is read-only.
type Resolver struct {
	table  *topics.Table
	gen    Generator
	policy Policy
	sleep  Sleeper
	cache  Cache
	logger *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithCache enables the answer cache.
func WithCache(cache Cache) Option {
	return func(r *Resolver) { r.cache = cache }
}

// WithSleeper replaces the pause between attempts.
func WithSleeper(sleep Sleeper) Option {
	return func(r *Resolver) { r.sleep = sleep }
}

// New creates a resolver over table and gen.
func New(table *topics.Table, gen Generator, policy Policy, opts ...Option) *Resolver {
	r := &Resolver{
		table:  table,
		gen:    gen,
		policy: policy,
		sleep:  SleepContext,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Topics returns the canned topic names in match order.
func (r *Resolver) Topics() []string {
	return r.table.Names()
}

// Resolve answers query. It never fails: upstream errors become UnavailableMessage.
func (r *Resolver) Resolve(ctx context.Context, query string) Answer {
	if validation.IsBlank(query) {
		return r.finish(query, Answer{HTML: PromptMessage, Source: models.OutcomePrompt})
	}

	query = strings.TrimSpace(query)
	if topic, ok := r.table.Match(query); ok {
		r.logger.Info("using canned answer", zap.String("topic", topic.Name))
		return r.finish(query, Answer{HTML: topic.Response, Source: models.OutcomeTopic, Topic: topic.Name})
	}

	// Only the upstream call and the cache key see the truncated question.
	query = validation.TruncateQuery(query)
	r.logger.Info("forwarding query", zap.Int("runes", utf8.RuneCountInString(query)))

	if r.cache != nil {
		if html, ok := r.cache.Lookup(ctx, query); ok {
			r.logger.Info("using cached answer")
			return r.finish(query, Answer{HTML: html, Source: models.OutcomeCache})
		}
	}

	answer, attempts, err := r.generate(ctx, query)
	if err != nil {
		r.logger.Error("upstream unavailable, using fallback",
			zap.Int("attempts", attempts),
			zap.Error(err))
		return r.finish(query, Answer{HTML: UnavailableMessage, Source: models.OutcomeFallback, Attempts: attempts})
	}

	html := WithDisclaimer(answer)
	if r.cache != nil {
		r.cache.Store(ctx, query, html)
	}
	r.logger.Info("using generated answer", zap.Int("attempts", attempts))
	return r.finish(query, Answer{HTML: html, Source: models.OutcomeGenerated, Attempts: attempts})
}

// Ping makes one upstream call with no retry.
func (r *Resolver) Ping(ctx context.Context) error {
	_, err := Retry(ctx, Policy{Attempts: 1, Timeout: r.policy.Timeout}, r.sleep, func(ctx context.Context, _ int) error {
		_, err := r.timedGenerate(ctx, DiagnosticQuestion)
		return err
	})
	return err
}

func (r *Resolver) generate(ctx context.Context, query string) (string, int, error) {
	var answer string
	attempts, err := Retry(ctx, r.policy, r.sleep, func(ctx context.Context, attempt int) error {
		a, err := r.timedGenerate(ctx, query)
		if err != nil {
			r.logger.Warn("upstream attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		answer = a
		return nil
	})
	return answer, attempts, err
}

func (r *Resolver) timedGenerate(ctx context.Context, question string) (string, error) {
	start := time.Now()
	answer, err := r.gen.Generate(ctx, question)
	metrics.ObserveUpstream(err, time.Since(start))
	return answer, err
}

func (r *Resolver) finish(query string, a Answer) Answer {
	metrics.RecordResolution(models.QueryLog{
		ID:        uuid.New(),
		Query:     query,
		Outcome:   a.Source,
		Topic:     a.Topic,
		Attempts:  a.Attempts,
		CreatedAt: time.Now(),
	})
	return a
}
