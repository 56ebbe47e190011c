package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// retryableHTTPLogger adapts zap.Logger to retryablehttp.LeveledLogger.
type retryableHTTPLogger struct {
	inner *zap.Logger
}

func (r retryableHTTPLogger) Error(format string, args ...any) {
	r.inner.Sugar().Errorw(format, args...)
}

func (r retryableHTTPLogger) Info(format string, args ...any) {
	r.inner.Sugar().Infow(format, args...)
}

func (r retryableHTTPLogger) Warn(format string, args ...any) {
	r.inner.Sugar().Warnw(format, args...)
}

func (r retryableHTTPLogger) Debug(format string, args ...any) {
	r.inner.Sugar().Debugw(format, args...)
}

func pushClient(logger *zap.Logger, period time.Duration) *http.Client {
	client := &retryablehttp.Client{
		HTTPClient:   retryablehttp.NewClient().HTTPClient,
		Logger:       retryableHTTPLogger{inner: logger},
		RetryMax:     3,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: min(period, 5*time.Second),
		Backoff:      retryablehttp.LinearJitterBackoff,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
	}
	return client.StandardClient()
}

// StartPushingMetrics pushes metrics to the gateway at url with the period until ctx is done.
// Failed pushes are retried with backoff before being reported.
func StartPushingMetrics(ctx context.Context, logger *zap.Logger, url string, period time.Duration, peerID string) {
	pusher := push.New(url, "go-multiuser").
		Client(pushClient(logger, period)).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("peer", peerID)
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := pusher.PushContext(ctx); err != nil {
					logger.Warn("failed to push metrics", zap.Error(err))
				}
			}
		}
	}()
}
