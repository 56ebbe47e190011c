// Package config contains go-multiuser node configuration definitions
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/sun-23/go-multiuser/filesystem"
	"github.com/sun-23/go-multiuser/p2p"
	"github.com/sun-23/go-multiuser/reconciler"
	"github.com/sun-23/go-multiuser/scene"
)

const defaultDataDirName = ".multiuser"

var defaultDataDir = filepath.Join(filesystem.GetUserHomeDirectory(), defaultDataDirName)

// Config defines the top level configuration for a multiuser node.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Preset     string            `mapstructure:"preset"`
	P2P        p2p.Config        `mapstructure:"p2p"`
	Reconciler reconciler.Config `mapstructure:"reconciler"`
	Scene      scene.Config      `mapstructure:"scene"`
	Tracking   TrackingConfig    `mapstructure:"tracking"`
	LOGGING    LoggerConfig      `mapstructure:"logging"`
}

// DataDir returns the absolute path to use for the node's data.
func (cfg *Config) DataDir() string {
	return filesystem.GetCanonicalPath(cfg.DataDirParent)
}

// BaseConfig defines the default configuration options for the node.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`

	ConfigFile string `mapstructure:"config"`

	CollectMetrics    bool          `mapstructure:"metrics"`
	MetricsPort       int           `mapstructure:"metrics-port"`
	MetricsPush       string        `mapstructure:"metrics-push"`
	MetricsPushPeriod time.Duration `mapstructure:"metrics-push-period"`

	// StatusInterval is how often the node logs peers and tracked anchors.
	// Zero disables the report.
	StatusInterval time.Duration `mapstructure:"status-interval"`
}

// TrackingConfig configures the simulated tracking engine.
type TrackingConfig struct {
	// Session fixes the initial session id, random if empty.
	Session string `mapstructure:"session"`
	// TickInterval is the frame period at which collaboration data is produced.
	TickInterval time.Duration `mapstructure:"tick-interval"`
	// DemoInterval places a transient marker periodically when positive.
	DemoInterval time.Duration `mapstructure:"demo-interval"`
	DemoName     string        `mapstructure:"demo-name"`
}

// DefaultConfig returns the default configuration for a multiuser node.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		P2P:        p2p.DefaultConfig(),
		Reconciler: reconciler.DefaultConfig(),
		Scene:      scene.DefaultConfig(),
		Tracking:   defaultTrackingConfig(),
		LOGGING:    defaultLoggingConfig(),
	}
}

func defaultBaseConfig() BaseConfig {
	return BaseConfig{
		DataDirParent:     defaultDataDir,
		MetricsPort:       1010,
		MetricsPushPeriod: 60 * time.Second,
		StatusInterval:    30 * time.Second,
	}
}

func defaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		TickInterval: 100 * time.Millisecond,
		DemoName:     "LaserRed",
	}
}

// LoadConfig reads the config file into vip. An empty path is a no-op.
func LoadConfig(config string, vip *viper.Viper) error {
	if len(config) == 0 {
		return nil
	}
	vip.SetConfigFile(config)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("can't load config at %s: %w", config, err)
	}
	return nil
}
