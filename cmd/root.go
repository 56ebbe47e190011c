package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/sun-23/go-multiuser/config"
	"github.com/sun-23/go-multiuser/config/presets"
)

// AddFlags adds node flags to the flag set. Flags write directly into cfg and
// are meant to be parsed after the config file and preset are loaded.
// The returned pointer holds the config file path.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	configPath = flagSet.StringP("config", "c", "", "load configuration from file")
	flagSet.StringVarP(&cfg.Preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "directory for the node data")
	flagSet.StringVar(&cfg.LOGGING.Encoder, "log-encoder",
		cfg.LOGGING.Encoder, "log as json instead of plain text")
	flagSet.BoolVar(&cfg.CollectMetrics, "metrics",
		cfg.CollectMetrics, "collect node metrics")
	flagSet.IntVar(&cfg.MetricsPort, "metrics-port",
		cfg.MetricsPort, "metric server port")
	flagSet.StringVar(&cfg.MetricsPush, "metrics-push",
		cfg.MetricsPush, "push metrics to url")
	flagSet.DurationVar(&cfg.MetricsPushPeriod, "metrics-push-period",
		cfg.MetricsPushPeriod, "push period")
	flagSet.DurationVar(&cfg.StatusInterval, "status-interval",
		cfg.StatusInterval, "how often to log connected peers and tracked anchors. 0 disables it")

	/** ======================== P2P Flags ========================== **/

	flagSet.StringVar(&cfg.P2P.ServiceName, "service-name",
		cfg.P2P.ServiceName, "name of the shared session, peers with different names don't talk to each other")
	flagSet.StringVar(&cfg.P2P.Listen, "listen",
		cfg.P2P.Listen, "address for listening")
	flagSet.StringSliceVar(&cfg.P2P.Peers, "peers",
		cfg.P2P.Peers, "multiaddrs of peers to stay connected to")
	flagSet.IntVar(&cfg.P2P.LowPeers, "low-peers",
		cfg.P2P.LowPeers, "low watermark for the number of connections")
	flagSet.IntVar(&cfg.P2P.HighPeers, "high-peers",
		cfg.P2P.HighPeers,
		"high watermark for the number of connections; once reached, connections are pruned until low watermark remains")
	flagSet.IntVar(&cfg.P2P.MaxMessageSize, "max-message-size",
		cfg.P2P.MaxMessageSize, "max size of a single message in bytes")
	flagSet.IntVar(&cfg.P2P.OutboundQueue, "outbound-queue",
		cfg.P2P.OutboundQueue, "number of best-effort messages queued per peer before dropping")
	flagSet.BoolVar(&cfg.P2P.Metrics, "p2p-metrics",
		cfg.P2P.Metrics, "collect bandwidth metrics per protocol")
	flagSet.BoolVar(&cfg.P2P.DisableReusePort, "disable-reuseport",
		cfg.P2P.DisableReusePort, "disables SO_REUSEPORT for tcp sockets")

	/** ======================== Reconciler Flags ========================== **/

	flagSet.IntVar(&cfg.Reconciler.MaxPeers, "max-peers",
		cfg.Reconciler.MaxPeers, "max number of peers in a session")
	flagSet.StringSliceVar(&cfg.Reconciler.TransientNames, "transient-names",
		cfg.Reconciler.TransientNames, "anchor names rendered as short-lived content")
	flagSet.DurationVar(&cfg.Reconciler.JoinTimeout, "join-timeout",
		cfg.Reconciler.JoinTimeout, "how long an admitted peer may take to connect")

	/** ======================== Scene Flags ========================== **/

	flagSet.DurationVar(&cfg.Scene.TransientTTL, "transient-ttl",
		cfg.Scene.TransientTTL, "lifetime of transient content")

	/** ======================== Tracking Flags ========================== **/

	flagSet.StringVar(&cfg.Tracking.Session, "session",
		cfg.Tracking.Session, "initial session id. random if empty")
	flagSet.DurationVar(&cfg.Tracking.TickInterval, "tick-interval",
		cfg.Tracking.TickInterval, "period at which collaboration data is produced")
	flagSet.DurationVar(&cfg.Tracking.DemoInterval, "demo-interval",
		cfg.Tracking.DemoInterval, "place a demo marker periodically. 0 disables it")

	return configPath
}
