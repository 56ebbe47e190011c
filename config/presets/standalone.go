package presets

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/sun-23/go-multiuser/config"
)

func init() {
	register("standalone", standalone())
}

// standalone runs a single node on the loopback interface with a demo marker.
func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.DataDirParent = filepath.Join(os.TempDir(), "multiuser")

	conf.P2P.Listen = "/ip4/127.0.0.1/tcp/0"
	conf.P2P.LogLevel = zapcore.ErrorLevel
	conf.P2P.LowPeers = 2
	conf.P2P.HighPeers = 6

	conf.StatusInterval = 5 * time.Second
	conf.Tracking.DemoInterval = 2 * time.Second

	conf.LOGGING.ReconcilerLoggerLevel = zapcore.DebugLevel.String()
	conf.LOGGING.SceneLoggerLevel = zapcore.DebugLevel.String()
	return conf
}
