// Package service runs the fetch, filter, check and report pipeline.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyagen/sportsvault/internal/classify"
	"github.com/voyagen/sportsvault/internal/config"
	"github.com/voyagen/sportsvault/internal/fetcher"
	"github.com/voyagen/sportsvault/internal/metrics"
	"github.com/voyagen/sportsvault/internal/models"
	"github.com/voyagen/sportsvault/internal/report"
)

// Checker checks a single stream URL.
type Checker interface {
	Check(ctx context.Context, url *string) models.CheckResult
}

// Coordinator serialises runs and announces their results.
type Coordinator interface {
	Acquire(ctx context.Context) (release func(), err error)
	Previous(ctx context.Context) (*models.RunSummary, error)
	Publish(ctx context.Context, s models.RunSummary) error
}

// Pipeline wires the components of one run. Steps execute strictly in
// sequence; streams are checked one at a time.
type Pipeline struct {
	cfg        *config.Config
	log        *zap.Logger
	checker    Checker
	builder    *report.Builder
	classifier classify.Classifier
	coord      Coordinator
	now        func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCoordinator enables the run lock and summary publishing.
func WithCoordinator(c Coordinator) Option {
	return func(p *Pipeline) { p.coord = c }
}

// WithClock overrides the time source used for fetched_at and the summary.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline from cfg.
func New(cfg *config.Config, log *zap.Logger, checker Checker, builder *report.Builder, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		log:        log.Named("pipeline"),
		checker:    checker,
		builder:    builder,
		classifier: classify.New(cfg.Keyword),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full pass. Only download, file write and lock errors are
// returned; per-stream failures end up in the report.
func (p *Pipeline) Run(ctx context.Context) (models.RunSummary, error) {
	summary := models.RunSummary{
		RunID:        uuid.NewString(),
		SourceURL:    p.cfg.SourceURL,
		ReportPath:   p.cfg.ReportPath,
		PlaylistPath: p.cfg.PlaylistPath,
		StartedAt:    p.now(),
	}
	log := p.log.With(zap.String("run_id", summary.RunID))

	if p.coord != nil {
		release, err := p.coord.Acquire(ctx)
		if err != nil {
			return summary, fmt.Errorf("acquire run lock: %w", err)
		}
		defer release()

		if prev, err := p.coord.Previous(ctx); err != nil {
			log.Warn("previous summary", zap.Error(err))
		} else if prev != nil {
			log.Info("previous run",
				zap.String("run_id", prev.RunID),
				zap.Time("finished_at", prev.FinishedAt),
				zap.Int("selected", prev.Selected),
				zap.Int("alive", prev.Alive))
		}
	}

	log.Info("downloading", zap.String("url", p.cfg.SourceURL))
	entries, err := fetcher.FetchEntries(ctx, p.cfg.SourceURL, p.cfg.UserAgent, p.cfg.FetchTimeout)
	if err != nil {
		return summary, fmt.Errorf("fetch: %w", err)
	}
	summary.Parsed = len(entries)
	log.Info("parsed playlist", zap.Int("entries", len(entries)))

	selected := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		field, ok := p.classifier.Match(e)
		if !ok {
			continue
		}
		log.Debug("selected", zap.String("title", e.Title), zap.String("matched", string(field)))
		selected = append(selected, e)
	}
	summary.Selected = len(selected)
	log.Info("sports candidates", zap.Int("count", len(selected)))

	items, err := p.builder.BuildInitial(selected, p.now())
	if err != nil {
		return summary, fmt.Errorf("build: %w", err)
	}
	log.Info("wrote playlist and initial report",
		zap.String("playlist", p.cfg.PlaylistPath),
		zap.String("report", p.cfg.ReportPath))

	log.Info("running health checks", zap.Int("streams", len(items)))
	results := make([]models.CheckResult, len(items))
	for i := range items {
		// The initial report stays on disk if the run is cancelled here.
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("checks cancelled: %w", err)
		}
		res := p.checker.Check(ctx, items[i].Stream)
		results[i] = res
		if res.Alive {
			summary.Alive++
		} else {
			summary.Dead++
		}
		log.Info(fmt.Sprintf("[%d/%d] %s", i+1, len(items), items[i].Name),
			zap.Bool("alive", res.Alive),
			zap.Int64p("latency_ms", res.LatencyMs),
			zap.Stringp("err", res.Error))
	}

	if err := p.builder.Finalize(items, results); err != nil {
		return summary, fmt.Errorf("finalize: %w", err)
	}
	summary.FinishedAt = p.now()
	log.Info("updated report with health checks",
		zap.String("report", p.cfg.ReportPath),
		zap.Int("alive", summary.Alive),
		zap.Int("dead", summary.Dead))

	if p.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(p.cfg.MetricsFile, items, summary); err != nil {
			log.Warn("metrics textfile", zap.Error(err))
		}
	}
	if p.coord != nil {
		if err := p.coord.Publish(ctx, summary); err != nil {
			log.Warn("publish summary", zap.Error(err))
		}
	}
	return summary, nil
}
