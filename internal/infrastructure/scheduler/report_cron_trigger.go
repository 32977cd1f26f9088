package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	reportapp "github.com/schoolms/backend/internal/application/report"
	"github.com/schoolms/backend/internal/infrastructure/config"
)

// SweepRunner runs the full report sweep. It is satisfied by the report
// scheduler service.
type SweepRunner interface {
	RunAllScopes(ctx context.Context, req reportapp.SchedulerRunRequest) ([]reportapp.ScopeResult, error)
}

// CronTriggerConfig holds configuration for the in-process monthly trigger
type CronTriggerConfig struct {
	// RunDay is the day of the month (1-28) to run the sweep
	RunDay int
	// RunHour is the hour (0-23) to run the sweep
	RunHour int
	// RunMinute is the minute (0-59) to run the sweep
	RunMinute int
	// CheckInterval is how often to check whether it is time to run
	CheckInterval time.Duration
	// RunTimeout bounds one full sweep
	RunTimeout time.Duration
}

// DefaultCronTriggerConfig runs on the 1st of each month at 02:00
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		RunDay:        1,
		RunHour:       2,
		RunMinute:     0,
		CheckInterval: time.Minute,
		RunTimeout:    10 * time.Minute,
	}
}

// CronTriggerConfigFrom builds a trigger config from the application config,
// falling back to defaults for unset values.
func CronTriggerConfigFrom(cfg config.SchedulerConfig) CronTriggerConfig {
	out := DefaultCronTriggerConfig()
	if cfg.Interval > 0 {
		out.CheckInterval = cfg.Interval
	}
	if cfg.RunTimeout > 0 {
		out.RunTimeout = cfg.RunTimeout
	}
	return out
}

// ReportCronTrigger fires the monthly report sweep from inside the process.
// Deployments that trigger the sweep through the HTTP endpoint leave it
// disabled.
type ReportCronTrigger struct {
	config CronTriggerConfig
	runner SweepRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   string // "2006-01" of the last fired sweep
}

// NewReportCronTrigger creates a new trigger
func NewReportCronTrigger(cfg CronTriggerConfig, runner SweepRunner, logger *zap.Logger) *ReportCronTrigger {
	return &ReportCronTrigger{
		config: cfg,
		runner: runner,
		logger: logger,
	}
}

// Start launches the check loop
func (c *ReportCronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Report cron trigger started",
		zap.Int("run_day", c.config.RunDay),
		zap.Int("run_hour", c.config.RunHour),
		zap.Int("run_minute", c.config.RunMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the check loop and waits for a running sweep to finish
func (c *ReportCronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Report cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *ReportCronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx, time.Now())
		}
	}
}

// checkAndTrigger fires the sweep when the scheduled moment of the current
// month has been reached and the month has not been run yet.
func (c *ReportCronTrigger) checkAndTrigger(ctx context.Context, now time.Time) {
	period := now.Format("2006-01")

	c.mu.Lock()
	alreadyRan := c.lastRun == period
	c.mu.Unlock()
	if alreadyRan {
		return
	}

	// Compare against the scheduled moment rather than matching the tick
	// exactly, so a coarse CheckInterval still fires the sweep.
	scheduled := time.Date(now.Year(), now.Month(), c.config.RunDay,
		c.config.RunHour, c.config.RunMinute, 0, 0, now.Location())
	if now.Before(scheduled) {
		return
	}

	c.mu.Lock()
	c.lastRun = period
	c.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, c.config.RunTimeout)
	defer cancel()

	c.logger.Info("Running scheduled report sweep", zap.String("tick", period))
	results, err := c.runner.RunAllScopes(runCtx, reportapp.SchedulerRunRequest{})
	if err != nil {
		c.logger.Error("Scheduled report sweep failed", zap.Error(err))
		return
	}

	for _, result := range results {
		if !result.Success {
			c.logger.Warn("Report scope failed in scheduled sweep",
				zap.String("branch", result.Branch),
				zap.String("error", result.Error),
			)
		}
	}
}
