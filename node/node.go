// Package node contains the main executable for go-multiuser node
package node

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sun-23/go-multiuser/cmd"
	"github.com/sun-23/go-multiuser/common/types"
	"github.com/sun-23/go-multiuser/config"
	"github.com/sun-23/go-multiuser/config/presets"
	"github.com/sun-23/go-multiuser/filesystem"
	"github.com/sun-23/go-multiuser/log"
	"github.com/sun-23/go-multiuser/metrics"
	"github.com/sun-23/go-multiuser/p2p"
	"github.com/sun-23/go-multiuser/reconciler"
	"github.com/sun-23/go-multiuser/scene"
	"github.com/sun-23/go-multiuser/tracking/sim"
)

const lockFile = "LOCK"

// Logger names.
const (
	P2PLogger        = "p2p"
	ReconcilerLogger = "reconciler"
	SceneLogger      = "scene"
	TrackingLogger   = "tracking"
	MetricsLogger    = "metrics"
)

// GetCommand returns the root command of the node.
func GetCommand() *cobra.Command {
	conf := config.DefaultConfig()
	var configPath *string
	c := &cobra.Command{
		Use:   "multiuser",
		Short: "start a shared session node",
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}

			app := New(
				WithConfig(&conf),
				// child loggers can only lower their level below the parent one.
				WithLog(log.NewWithLevel("node", zap.NewAtomicLevelAt(zap.DebugLevel), log.Encoder(conf.LOGGING.Encoder))),
			)

			// os.Interrupt for all systems, syscall.SIGTERM is mainly for docker.
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := filesystem.ExistOrCreate(app.Config.DataDir()); err != nil {
				return log.ErrEnsureDataDir(app.Config.DataDir(), err)
			}

			if err := app.Lock(); err != nil {
				return fmt.Errorf("getting exclusive file lock: %w", err)
			}
			defer app.Unlock()

			// Don't print usage on error from this point forward
			c.SilenceUsage = true

			// This blocks until the context is finished or until an error is produced
			err := app.Start(ctx)
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cleanupCancel()
			app.Cleanup(cleanupCtx)
			return err
		},
	}

	configPath = cmd.AddFlags(c.PersistentFlags(), &conf)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println(cmd.Version)
		},
	}
	c.AddCommand(versionCmd)
	return c
}

func configure(c *cobra.Command, configPath string, conf *config.Config) error {
	preset := conf.Preset // might be set via CLI flag
	if err := loadConfig(conf, preset, configPath); err != nil {
		return log.ErrMalformedConfig(err)
	}
	// apply CLI args to config
	if err := c.ParseFlags(os.Args[1:]); err != nil {
		return log.ErrBadFlags(err)
	}
	return nil
}

// loadConfig loads config and preset (if provided) into the provided config.
// It first loads the preset and then overrides it with values from the config file.
func loadConfig(cfg *config.Config, preset, path string) error {
	v := viper.New()
	// read in config from file
	if err := config.LoadConfig(path, v); err != nil {
		return err
	}

	// override default config with preset if provided
	if len(preset) == 0 && v.IsSet("preset") {
		preset = v.GetString("preset")
	}
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return err
		}
		*cfg = p
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)

	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}

	// load config if it was loaded to the viper
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}

// Option to modify an App instance.
type Option func(app *App)

// WithLog enables logger for an App.
func WithLog(logger *zap.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

// WithConfig overwrites default App config.
func WithConfig(conf *config.Config) Option {
	return func(app *App) {
		app.Config = conf
	}
}

// WithClock overwrites the clock driving ticks and periodic reports.
func WithClock(clock clockwork.Clock) Option {
	return func(app *App) {
		app.clock = clock
	}
}

// New creates an instance of the node.
func New(opts ...Option) *App {
	defaultConfig := config.DefaultConfig()
	app := &App{
		Config:  &defaultConfig,
		log:     log.NewNop(),
		clock:   clockwork.NewRealClock(),
		loggers: make(map[string]*zap.AtomicLevel),
		started: make(chan struct{}),
		errCh:   make(chan error, 1),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// App is the cli app singleton.
type App struct {
	Config   *config.Config
	log      *zap.Logger
	clock    clockwork.Clock
	fileLock *flock.Flock

	host       *p2p.Host
	engine     *sim.Engine
	scene      *scene.Scene
	controller *reconciler.Controller
	metrics    *metrics.Server

	loggers map[string]*zap.AtomicLevel
	started chan struct{} // this channel is closed once the app has finished starting
	errCh   chan error
	cancel  context.CancelFunc
	eg      errgroup.Group
}

// Lock locks the data dir for exclusive use. It returns an error if the data dir is already locked.
func (app *App) Lock() error {
	fl := flock.New(filepath.Join(app.Config.DataDir(), lockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", fl.Path(), err)
	} else if !locked {
		return fmt.Errorf("only one node should be running per data dir (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

// Unlock unlocks the data dir. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.log.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
}

// Started is closed once the app has finished starting.
func (app *App) Started() <-chan struct{} {
	return app.started
}

// Host returns the p2p host, nil before the app is started.
func (app *App) Host() *p2p.Host {
	return app.host
}

// Engine returns the tracking engine, nil before the app is started.
func (app *App) Engine() *sim.Engine {
	return app.engine
}

// Status returns a snapshot of the session state.
func (app *App) Status(ctx context.Context) (reconciler.Status, error) {
	if app.controller == nil {
		return reconciler.Status{}, reconciler.ErrStopped
	}
	return app.controller.Snapshot(ctx)
}

func (app *App) getAppInfo() string {
	return fmt.Sprintf(
		"App version: %s. Git: %s - %s . Go Version: %s. OS: %s-%s . Service %s",
		cmd.Version,
		cmd.Branch,
		cmd.Commit,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
		app.Config.P2P.ServiceName,
	)
}

// Wrap the top-level logger to set the level for a specific module.
// Calling this method will create a new logger every time
// and not re-use an existing logger with the same name.
//
// This method is not safe to be called concurrently.
func (app *App) addLogger(name string, logger *zap.Logger) *zap.Logger {
	lvl, err := decodeLoggerLevel(app.Config, name)
	if err != nil {
		app.log.Panic("unable to decode loggers into map[string]string", zap.Error(err))
	}
	app.loggers[name] = &lvl
	return log.Module(logger, name, lvl)
}

// SetLogLevel updates the log level of an existing logger.
func (app *App) SetLogLevel(name, loglevel string) error {
	lvl, ok := app.loggers[name]
	if !ok {
		return fmt.Errorf("cannot find logger %v", name)
	}

	if err := lvl.UnmarshalText([]byte(loglevel)); err != nil {
		return fmt.Errorf("unmarshal text: %w", err)
	}

	return nil
}

func (app *App) initServices(ctx context.Context) error {
	p2pCfg := app.Config.P2P
	if len(p2pCfg.DataDir) == 0 {
		p2pCfg.DataDir = filepath.Join(app.Config.DataDir(), "p2p")
	}
	host, err := p2p.New(ctx, app.addLogger(P2PLogger, app.log), p2pCfg, p2p.WithClock(app.clock))
	if err != nil {
		return log.ErrStartHost(err)
	}
	app.host = host

	engineOpts := []sim.Opt{sim.WithLogger(app.addLogger(TrackingLogger, app.log))}
	if len(app.Config.Tracking.Session) > 0 {
		engineOpts = append(engineOpts, sim.WithSession(types.SessionID(app.Config.Tracking.Session)))
	}
	app.engine = sim.New(engineOpts...)

	sceneLog := app.addLogger(SceneLogger, app.log)
	app.scene = scene.New(
		scene.LogRenderer{Logger: sceneLog.Named("renderer")},
		scene.WithLogger(sceneLog),
		scene.WithConfig(app.Config.Scene),
		scene.WithClock(app.clock),
	)

	controller, err := reconciler.New(app.host, app.engine, app.scene,
		reconciler.WithLogger(app.addLogger(ReconcilerLogger, app.log)),
		reconciler.WithConfig(app.Config.Reconciler),
		reconciler.WithClock(app.clock),
	)
	if err != nil {
		return fmt.Errorf("create reconciler: %w", err)
	}
	app.controller = controller
	app.engine.Subscribe(controller)
	return nil
}

func (app *App) startServices(ctx context.Context) error {
	app.eg.Go(func() error {
		if err := app.controller.Run(ctx); err != nil {
			app.errCh <- fmt.Errorf("reconciler: %w", err)
		}
		return nil
	})
	app.controller.LocalSessionChanged(app.engine.SessionID())
	if err := app.host.Start(ctx, app.controller); err != nil {
		return log.ErrStartHost(err)
	}
	app.eg.Go(func() error {
		app.tick(ctx)
		return nil
	})
	if app.Config.StatusInterval > 0 {
		app.eg.Go(func() error {
			app.report(ctx)
			return nil
		})
	}
	if app.Config.Tracking.DemoInterval > 0 {
		app.eg.Go(func() error {
			app.demo(ctx)
			return nil
		})
	}

	metricsLog := app.addLogger(MetricsLogger, app.log)
	if app.Config.CollectMetrics {
		app.metrics = metrics.NewServer(metricsLog, app.Config.MetricsPort)
		app.metrics.Start()
	}
	if len(app.Config.MetricsPush) > 0 {
		metrics.StartPushingMetrics(ctx, metricsLog, app.Config.MetricsPush,
			app.Config.MetricsPushPeriod, app.host.ID().String())
	}
	return nil
}

// Start starts the node and blocks until ctx is canceled or a service fails.
func (app *App) Start(ctx context.Context) error {
	err := app.startSynchronous(ctx)
	if err != nil {
		app.log.Error("failed to start App", zap.Error(err))
		return err
	}

	// app blocks until it receives a signal to exit
	// this signal may come from the node or from sig-abort (ctrl-c)
	select {
	case <-ctx.Done():
		return nil
	case err = <-app.errCh:
		return err
	}
}

func (app *App) startSynchronous(ctx context.Context) error {
	// notify anyone who might be listening that the app has finished starting.
	defer close(app.started)

	ctx, app.cancel = context.WithCancel(ctx)
	app.log.Info(app.getAppInfo())
	if err := app.initServices(ctx); err != nil {
		return err
	}
	if err := app.startServices(ctx); err != nil {
		return err
	}
	app.log.Info("node started",
		zap.Stringer("peer", app.host.ID()),
		zap.Any("addresses", app.host.Addrs()),
		zap.Stringer("session_id", app.engine.SessionID()),
	)
	return nil
}

// Cleanup stops all app services.
func (app *App) Cleanup(ctx context.Context) {
	app.log.Info("app cleanup starting...")
	if app.host != nil {
		if err := app.host.Stop(); err != nil {
			app.log.Warn("failed to stop p2p host", zap.Error(err))
		}
	}
	if app.cancel != nil {
		app.cancel()
	}
	if err := app.eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		app.log.Warn("service failed", zap.Error(err))
	}
	if app.scene != nil {
		app.scene.Wait()
	}
	if app.metrics != nil {
		if err := app.metrics.Stop(ctx); err != nil {
			app.log.Warn("failed to stop metrics server", zap.Error(err))
		}
	}
	app.log.Info("app cleanup completed")
}

// tick drives the tracking engine at the configured frame period.
func (app *App) tick(ctx context.Context) {
	ticker := app.clock.NewTicker(app.Config.Tracking.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := app.engine.Tick(); err != nil {
				app.log.Warn("tracking tick failed", zap.Error(err))
			}
		}
	}
}

func (app *App) report(ctx context.Context) {
	ticker := app.clock.NewTicker(app.Config.StatusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			st, err := app.controller.Snapshot(ctx)
			if err != nil {
				return
			}
			app.log.Info("session status",
				zap.Stringer("session_id", st.SessionID),
				zap.Int("peers", len(st.Peers)),
				zap.Int("remote_anchors", st.Anchors),
			)
			for _, peer := range st.Peers {
				app.log.Debug("peer status",
					zap.Stringer("peer", peer.Peer),
					zap.Stringer("state", peer.State),
					zap.Stringer("session_id", peer.SessionID),
				)
			}
		}
	}
}

// demo walks the local participant back and forth and periodically places
// a transient marker in front of it.
func (app *App) demo(ctx context.Context) {
	ticker := app.clock.NewTicker(app.Config.Tracking.DemoInterval)
	defer ticker.Stop()
	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			x := demoOffset(step)
			app.engine.Move(types.Translation(x, 0, 0))
			id := app.controller.Place(types.Translation(x, 0, -0.5), app.Config.Tracking.DemoName)
			app.log.Debug("placed demo marker", zap.Stringer("anchor", id), zap.Float32("x", x))
		}
	}
}

// demoOffset moves between -0.5 and 0.5 in steps of 0.1.
func demoOffset(step int) float32 {
	pos := step % 20
	if pos > 10 {
		pos = 20 - pos
	}
	return float32(pos-5) / 10
}

func decodeLoggerLevel(cfg *config.Config, name string) (zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevel()
	loggers := map[string]string{}
	if err := mapstructure.Decode(cfg.LOGGING, &loggers); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("error decoding mapstructure: %w", err)
	}

	level, ok := loggers[name]
	if ok {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("cannot parse logging for %v: %w", name, err)
		}
	} else {
		lvl.SetLevel(log.DefaultLevel())
	}

	return lvl, nil
}
