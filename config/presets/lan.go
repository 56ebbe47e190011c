package presets

import (
	"time"

	"github.com/sun-23/go-multiuser/config"
)

func init() {
	register("lan", lan())
}

// lan is a room-scale session with metrics exposed and json logs.
func lan() config.Config {
	conf := config.DefaultConfig()

	conf.CollectMetrics = true
	conf.MetricsPort = 9090
	conf.P2P.Metrics = true
	conf.P2P.DialInterval = 5 * time.Second
	conf.P2P.GracePeersShutdown = 10 * time.Second

	conf.Reconciler.JoinTimeout = 10 * time.Second
	conf.Tracking.TickInterval = 50 * time.Millisecond

	conf.LOGGING.Encoder = config.JSONLogEncoder
	return conf
}
