package p2p

import (
	"context"
	"errors"
	"fmt"
	"time"

	lp2plog "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/metrics"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/transport"
	"github.com/libp2p/go-libp2p/p2p/host/peerstore/pstoremem"
	"github.com/libp2p/go-libp2p/p2p/muxer/yamux"
	"github.com/libp2p/go-libp2p/p2p/net/connmgr"
	"github.com/libp2p/go-libp2p/p2p/security/noise"
	"github.com/libp2p/go-libp2p/p2p/transport/tcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultConfig config.
func DefaultConfig() Config {
	return Config{
		ServiceName:        "multiuser-ar",
		Listen:             "/ip4/0.0.0.0/tcp/7613",
		LogLevel:           zapcore.WarnLevel,
		LowPeers:           8,
		HighPeers:          16,
		GracePeersShutdown: 30 * time.Second,
		MaxMessageSize:     16 << 20,
		OutboundQueue:      256,
		DialTimeout:        10 * time.Second,
		DialInterval:       10 * time.Second,
	}
}

// Config for all things related to p2p layer.
type Config struct {
	DataDir  string        `mapstructure:"data-dir"`
	LogLevel zapcore.Level `mapstructure:"log-level"`

	// ServiceName scopes protocol ids and the broadcast topic. Peers with different
	// service names can't exchange data.
	ServiceName        string        `mapstructure:"service-name"`
	Listen             string        `mapstructure:"listen"`
	Peers              []string      `mapstructure:"peers"`
	LowPeers           int           `mapstructure:"low-peers"`
	HighPeers          int           `mapstructure:"high-peers"`
	GracePeersShutdown time.Duration `mapstructure:"grace-peers-shutdown"`
	MaxMessageSize     int           `mapstructure:"max-message-size"`
	// OutboundQueue bounds best-effort messages queued per peer.
	OutboundQueue int           `mapstructure:"outbound-queue"`
	DialTimeout   time.Duration `mapstructure:"dial-timeout"`
	DialInterval  time.Duration `mapstructure:"dial-interval"`

	// see https://lwn.net/Articles/542629/ for reuseport explanation
	DisableReusePort bool `mapstructure:"disable-reuseport"`
	Metrics          bool `mapstructure:"p2p-metrics"`
}

// New initializes libp2p host with admission gating.
func New(_ context.Context, logger *zap.Logger, cfg Config, opts ...Opt) (*Host, error) {
	logger.Info("starting libp2p host", zap.Any("config", &cfg))
	key, err := EnsureIdentity(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	lp2plog.SetPrimaryCore(logger.Core())
	lp2plog.SetAllLoggers(lp2plog.LogLevel(cfg.LogLevel))
	cm, err := connmgr.NewConnManager(cfg.LowPeers, cfg.HighPeers, connmgr.WithGracePeriod(cfg.GracePeersShutdown))
	if err != nil {
		return nil, fmt.Errorf("p2p create conn mgr: %w", err)
	}
	ps, err := pstoremem.NewPeerstore()
	if err != nil {
		return nil, fmt.Errorf("can't create peer store: %w", err)
	}
	streamer := *yamux.DefaultTransport
	bandwidth := metrics.NewBandwidthCounter()
	g := &gater{}
	lopts := []libp2p.Option{
		libp2p.Identity(key),
		libp2p.ListenAddrStrings(cfg.Listen),
		libp2p.UserAgent("go-multiuser"),
		libp2p.Transport(func(upgrader transport.Upgrader, rcmgr network.ResourceManager) (transport.Transport, error) {
			opts := []tcp.Option{}
			if cfg.DisableReusePort {
				opts = append(opts, tcp.DisableReuseport())
			}
			if cfg.Metrics {
				opts = append(opts, tcp.WithMetrics())
			}
			return tcp.NewTCPTransport(upgrader, rcmgr, opts...)
		}),
		libp2p.Security(noise.ID, noise.New),
		libp2p.Muxer(yamux.ID, &streamer),
		libp2p.ConnectionManager(cm),
		libp2p.ConnectionGater(g),
		libp2p.Peerstore(ps),
		libp2p.BandwidthReporter(bandwidth),
	}
	h, err := libp2p.New(lopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize libp2p host: %w", err)
	}
	g.setNetwork(h.Network())
	if cfg.Metrics {
		err := prometheus.Register(newBandwidthCollector(bandwidth))
		if err != nil && !errors.As(err, &prometheus.AlreadyRegisteredError{}) {
			h.Close()
			return nil, fmt.Errorf("register bandwidth collector: %w", err)
		}
	}
	logger.Info("local node identity", zap.Stringer("identity", h.ID()))
	opts = append(opts, WithConfig(cfg), WithLogger(logger), withGater(g))
	return Upgrade(h, opts...)
}
