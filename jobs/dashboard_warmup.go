package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/gescom-app/gescom/internal/dashboard"
	"github.com/gescom-app/gescom/internal/finance"
)

// DashboardWarmupJob pre-populates the dashboard caches so the first
// request after an invalidation does not pay for a full aggregation.
type DashboardWarmupJob struct {
	Service *dashboard.Service
	Logger  *slog.Logger
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(service *dashboard.Service, logger *slog.Logger) *DashboardWarmupJob {
	return &DashboardWarmupJob{Service: service, Logger: logger}
}

// Handle processes dashboard warmup tasks. Periods warm concurrently; the
// consistency guarantee lives inside each Overview call, not across them.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	periods := make([]finance.Period, 0, 4)
	if len(payload.Periods) == 0 {
		periods = append(periods, finance.PeriodAll, finance.PeriodMonth, finance.PeriodQuarter, finance.PeriodYear)
	} else {
		for _, raw := range payload.Periods {
			p := finance.Period(raw)
			if !p.Valid() {
				j.logger().Warn("skipping unknown warmup period", slog.String("period", raw))
				continue
			}
			periods = append(periods, p)
		}
	}

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, period := range periods {
		g.Go(func() error {
			warmCtx, cancel := context.WithTimeout(gctx, 20*time.Second)
			defer cancel()
			if _, err := j.Service.Overview(warmCtx, period); err != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		j.logger().Error("dashboard warmup", slog.Any("error", err))
		return err
	}

	j.logger().Info("completed dashboard warmup",
		slog.Int("periods", len(periods)),
		slog.Duration("duration", time.Since(started)),
	)
	return nil
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

// CacheBumpJob invalidates the dashboard cache version.
type CacheBumpJob struct {
	Cache  *dashboard.Cache
	Logger *slog.Logger
}

// NewCacheBumpJob wires dependencies for the bump handler.
func NewCacheBumpJob(cache *dashboard.Cache, logger *slog.Logger) *CacheBumpJob {
	return &CacheBumpJob{Cache: cache, Logger: logger}
}

// Handle processes cache bump tasks.
func (j *CacheBumpJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("cache bump: handler not configured")
	}
	var payload CacheBumpPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.Cache.Bump(ctx); err != nil {
		return err
	}
	if j.Logger != nil {
		j.Logger.Info("dashboard cache bumped", slog.String("reason", payload.Reason))
	}
	return nil
}
