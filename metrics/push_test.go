package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartPushingMetrics(t *testing.T) {
	var attempts atomic.Int32
	paths := make(chan string, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// first attempt fails and is retried
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		select {
		case paths <- r.URL.Path:
		default:
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	StartPushingMetrics(ctx, zap.NewNop(), srv.URL, 50*time.Millisecond, "peer-1")

	select {
	case path := <-paths:
		require.Equal(t, "/metrics/job/go-multiuser/peer/peer-1", path)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "metrics were not pushed")
	}
	require.GreaterOrEqual(t, attempts.Load(), int32(2))
}
