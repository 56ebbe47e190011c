package presets

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sun-23/go-multiuser/config"
)

func TestOptions(t *testing.T) {
	require.Equal(t, []string{"lan", "standalone"}, Options())
}

func TestGet(t *testing.T) {
	conf, err := Get("standalone")
	require.NoError(t, err)
	require.Equal(t, "standalone", conf.Preset)
	require.Equal(t, "/ip4/127.0.0.1/tcp/0", conf.P2P.Listen)
	require.Positive(t, conf.Tracking.DemoInterval)

	conf, err = Get("lan")
	require.NoError(t, err)
	require.True(t, conf.CollectMetrics)
	require.Equal(t, config.JSONLogEncoder, conf.LOGGING.Encoder)

	_, err = Get("mainnet")
	require.ErrorContains(t, err, "preset mainnet is not registered")
}

func TestGetReturnsCopy(t *testing.T) {
	conf, err := Get("lan")
	require.NoError(t, err)
	conf.Reconciler.TransientNames[0] = "changed"

	again, err := Get("lan")
	require.NoError(t, err)
	require.Equal(t, []string{"LaserRed"}, again.Reconciler.TransientNames)
}
