package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/config"
	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// PriceSource yields ingredient rows from somewhere outside the store.
type PriceSource interface {
	FetchIngredients(ctx context.Context) ([]models.IngredientSource, error)
}

// NamedSource labels a PriceSource for logging.
type NamedSource struct {
	Name   string
	Source PriceSource
}

// IngredientMerger is the part of the pricing service the refresh job needs.
type IngredientMerger interface {
	MergeIngredients(ctx context.Context, rows []models.IngredientSource) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	merger  IngredientMerger
	sources []NamedSource
	cfg     config.RefreshConfig
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance. The schedule is interpreted
// in the configured timezone.
func NewScheduler(cfg config.RefreshConfig, merger IngredientMerger, sources []NamedSource, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		merger:  merger,
		sources: sources,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Start starts the scheduler. Without any price source there is nothing to
// refresh and no job is registered.
func (s *Scheduler) Start() {
	if len(s.sources) == 0 {
		s.logger.Info("no external price sources configured, price refresh disabled")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshPrices)
	if err != nil {
		s.logger.Error("failed to schedule price refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshPrices() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.RefreshPrices(ctx); err != nil {
		s.logger.Error("price refresh failed", zap.Error(err))
	}
}

// RefreshPrices pulls every source in order and merges the rows into the
// catalogue, later sources overriding earlier ones. A failing source is
// logged and skipped; the live table is only replaced when something
// changed.
func (s *Scheduler) RefreshPrices(ctx context.Context) (int, error) {
	var rows []models.IngredientSource
	fetched := 0

	for _, src := range s.sources {
		got, err := src.Source.FetchIngredients(ctx)
		if err != nil {
			s.logger.Warn("price source failed", zap.String("source", src.Name), zap.Error(err))
			continue
		}
		s.logger.Debug("price source fetched", zap.String("source", src.Name), zap.Int("rows", len(got)))
		rows = append(rows, got...)
		fetched++
	}

	if fetched == 0 {
		return 0, fmt.Errorf("all %d price sources failed", len(s.sources))
	}

	changed, err := s.merger.MergeIngredients(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("merge ingredients: %w", err)
	}

	s.logger.Info("price refresh completed", zap.Int("rows", len(rows)), zap.Int("changed", changed))
	return changed, nil
}
