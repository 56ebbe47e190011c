package cmd

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/sun-23/go-multiuser/config"
)

func TestAddFlags(t *testing.T) {
	conf := config.DefaultConfig()
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	path := AddFlags(flagSet, &conf)

	require.NoError(t, flagSet.Parse([]string{
		"-c", "node.toml",
		"--preset", "lan",
		"--max-peers", "3",
		"--peers", "/ip4/10.0.0.2/tcp/7613/p2p/QmA,/ip4/10.0.0.3/tcp/7613/p2p/QmB",
		"--transient-ttl", "1s",
		"--metrics",
	}))
	require.Equal(t, "node.toml", *path)
	require.Equal(t, "lan", conf.Preset)
	require.Equal(t, 3, conf.Reconciler.MaxPeers)
	require.Len(t, conf.P2P.Peers, 2)
	require.Equal(t, time.Second, conf.Scene.TransientTTL)
	require.True(t, conf.CollectMetrics)

	// untouched flags keep defaults
	require.Equal(t, config.DefaultConfig().P2P.Listen, conf.P2P.Listen)
}
