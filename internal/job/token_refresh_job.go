package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gaming-community-api/internal/client"
)

// TokenRefreshJob keeps the IGDB access token warm so requests never pay the
// auth round trip
type TokenRefreshJob struct {
	tokens   client.TokenProvider
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewTokenRefreshJob creates a token refresh job with a cron schedule
func NewTokenRefreshJob(tokens client.TokenProvider, schedule string, logger *zap.Logger) *TokenRefreshJob {
	return &TokenRefreshJob{
		tokens:   tokens,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start prefetches the token once and schedules periodic refreshes.
// A failed prefetch is logged but never fatal; the next catalog request
// fetches on demand.
func (j *TokenRefreshJob) Start() error {
	j.run()

	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("IGDB token refresh job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish
func (j *TokenRefreshJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("IGDB token refresh job stopped")
}

func (j *TokenRefreshJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := j.tokens.AccessToken(ctx); err != nil {
		j.logger.Warn("IGDB token refresh failed", zap.Error(err))
		return
	}
	j.logger.Debug("IGDB token refreshed")
}
