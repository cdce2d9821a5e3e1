package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/config"
	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/client"
	"github.com/yndnr/tankmate-go/internal/core/appctx"
	"github.com/yndnr/tankmate-go/internal/core/service"
	"github.com/yndnr/tankmate-go/internal/core/session"
	"github.com/yndnr/tankmate-go/internal/infra/buildinfo"
	"github.com/yndnr/tankmate-go/internal/infra/shutdown"
	"github.com/yndnr/tankmate-go/internal/storage"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
	"github.com/yndnr/tankmate-go/internal/telemetry/metric"
)

// Runtime holds what commands share within one process: configuration,
// the local store, the API client and the services built on them.
type Runtime struct {
	ConfigPath string

	Log     logger.Logger
	Metrics *metric.Registry

	Store       storage.KV
	Sessions    *session.Store
	States      *appctx.Store
	Client      *client.Client
	Auth        *service.AuthService
	Tanks       *service.TankService
	Params      *service.ParameterService
	Events      *service.EventService
	Inhabitants *service.InhabitantService

	In  io.Reader
	Out io.Writer
	Err io.Writer

	mu        sync.RWMutex
	cfg       *config.CLIConfig
	overrides map[string]any
	format    output.Format
	noHeaders bool

	input    *bufio.Reader
	opened   bool
	depth    int
	shutdown *shutdown.Handler
	now      func() time.Time
}

// NewRuntime loads configuration and sets up logging and metrics. Storage
// and the API client are opened later by Open.
func NewRuntime(c *cli.Context) (*Runtime, error) {
	flags := ParseGlobalFlags(c)
	path := flags.Config
	if path == "" {
		path = config.DefaultConfigPath()
	}
	overrides := flags.Overrides()
	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	logCfg.Level = cfg.EffectiveLogLevel()
	logCfg.Output = c.App.ErrWriter
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	return &Runtime{
		ConfigPath: path,
		Log:        log,
		Metrics:    metric.NewRegistry(),
		In:         c.App.Reader,
		Out:        c.App.Writer,
		Err:        c.App.ErrWriter,
		cfg:        cfg,
		overrides:  overrides,
		shutdown:   shutdown.NewHandler(shutdown.DefaultTimeout),
		now:        time.Now,
	}, nil
}

// enter starts one invocation; per-line flags only change presentation.
func (rt *Runtime) enter(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	format := rt.Config().Output
	if c.IsSet("output") {
		format = flags.Output
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.format = f
	rt.noHeaders = flags.NoHeaders
	rt.depth++
	rt.mu.Unlock()
	return nil
}

// leave ends an invocation and reports whether it was the outermost one.
func (rt *Runtime) leave() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.depth--
	return rt.depth <= 0
}

// Config returns the active configuration.
func (rt *Runtime) Config() *config.CLIConfig {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.cfg
}

// Reload re-reads the configuration file. Only presentation and logging
// settings take effect without a restart.
func (rt *Runtime) Reload() error {
	cfg, err := config.Load(rt.ConfigPath, rt.overrides)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.EffectiveLogLevel())

	rt.mu.Lock()
	rt.cfg = cfg
	rt.format = format
	rt.mu.Unlock()
	rt.Log.Info("configuration reloaded", "path", rt.ConfigPath, "output", string(format))
	return nil
}

// Open opens storage and the API client and restores the session. Stages
// that already succeeded are kept when a later one fails.
func (rt *Runtime) Open(ctx context.Context) error {
	if rt.opened {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := rt.Config()

	if rt.Store == nil {
		kv, err := storage.Open(ctx, cfg.Store, rt.Log.Slog(), rt.Metrics.Registerer())
		if err != nil {
			return err
		}
		rt.shutdown.OnShutdown("store", func(context.Context) error { return kv.Close() })
		rt.Store = kv
		rt.Sessions = session.NewStore(kv, nil, rt.Log)
		rt.States = appctx.NewStore(kv, rt.Log)
	}

	if rt.Client == nil {
		apiCfg := cfg.API
		apiCfg.UserAgent = buildinfo.UserAgent()
		api, err := client.New(apiCfg,
			client.WithTokenSource(rt.Sessions),
			client.WithLogger(rt.Log),
			client.WithMetrics(rt.Metrics),
			client.WithUnauthorizedHandler(func(ctx context.Context) {
				rt.Auth.HandleUnauthorized(ctx)
			}),
		)
		if err != nil {
			return err
		}
		rt.shutdown.OnShutdown("client", func(context.Context) error {
			api.Close()
			return nil
		})
		rt.Client = api
		rt.Metrics.Registerer().MustRegister(metric.NewCollector(rt.sessionState))
	}

	state, err := rt.States.Load(ctx)
	if err != nil {
		return err
	}
	rt.Auth = service.NewAuthService(rt.Client, rt.Sessions, rt.States, state, rt.Log)
	rt.Tanks = service.NewTankService(rt.Client)
	rt.Params = service.NewParameterService(rt.Client)
	rt.Events = service.NewEventService(rt.Client)
	rt.Inhabitants = service.NewInhabitantService(rt.Client)

	outcome, err := rt.Auth.Bootstrap(ctx)
	if err != nil {
		return err
	}
	if outcome == service.BootstrapExpired {
		fmt.Fprintln(rt.Err, "Your session has expired. Please log in again.")
	}
	rt.opened = true
	return nil
}

func (rt *Runtime) sessionState() (bool, time.Duration) {
	tok := rt.Sessions.Token(context.Background())
	if tok == "" {
		return false, 0
	}
	remaining := rt.Sessions.Checker().Remaining(tok)
	return remaining > 0, remaining
}

// State returns the application state. Open must have been called.
func (rt *Runtime) State() *appctx.State {
	return rt.Auth.State()
}

// Close releases storage and the client.
func (rt *Runtime) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return rt.shutdown.Shutdown(ctx)
}

// Input returns a buffered reader over In shared by every prompt.
func (rt *Runtime) Input() *bufio.Reader {
	if rt.input == nil {
		rt.input = bufio.NewReader(rt.In)
	}
	return rt.input
}

// Print renders data in the selected output format.
func (rt *Runtime) Print(data any) error {
	rt.mu.RLock()
	format, noHeaders := rt.format, rt.noHeaders
	rt.mu.RUnlock()

	if format == output.FormatTable {
		return output.TableFormatter{NoHeaders: noHeaders}.Format(rt.Out, data)
	}
	return output.NewFormatter(format).Format(rt.Out, data)
}

// Format returns the output format of the current invocation.
func (rt *Runtime) Format() output.Format {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.format
}

// Notice prints a human message in table mode; structured formats stay
// machine readable.
func (rt *Runtime) Notice(format string, args ...any) {
	if rt.Format() == output.FormatTable {
		fmt.Fprintf(rt.Out, format+"\n", args...)
	}
}

// Now returns the current time.
func (rt *Runtime) Now() time.Time {
	return rt.now()
}

// requireAuth opens the runtime and fails unless a session exists.
func requireAuth(c *cli.Context) (*Runtime, error) {
	rt, err := Ensure(c)
	if err != nil {
		return nil, err
	}
	if err := rt.Auth.RequireAuth(c.Context); err != nil {
		return nil, err
	}
	return rt, nil
}

// commandContext bounds a command's API calls.
func commandContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	if rt := RuntimeFrom(c); rt != nil && rt.Log != nil {
		parent = logger.WithLogger(parent, rt.Log)
	}
	return context.WithTimeout(parent, 30*time.Second)
}
