package limiter

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter throttles outbound calls to the rate-limited metadata
// provider. Callers block in Wait until a slot frees or their context
// expires.
type Limiter struct {
	logger *zap.Logger
	l      *rate.Limiter
}

func New(logger *zap.Logger, limit, burst int) *Limiter {
	return &Limiter{logger: logger, l: rate.NewLimiter(rate.Limit(limit), burst)}
}

// Wait blocks until the next call is allowed.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.l.Wait(ctx); err != nil {
		l.logger.Debug("Rate limit wait aborted", zap.Error(err))
		return err
	}
	return nil
}

// Limit reports whether the next call should be rejected outright.
func (l *Limiter) Limit() bool {
	allowed := l.l.Allow()
	l.logger.Debug("Rate limit check",
		zap.Bool("allowed", allowed),
		zap.Float64("limit", float64(l.l.Limit())),
		zap.Int("burst", l.l.Burst()),
	)
	return !allowed
}
