package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/favfood/internal/client/client"
	"github.com/dmitrijs2005/favfood/internal/client/config"
	"github.com/dmitrijs2005/favfood/internal/client/form"
	"github.com/dmitrijs2005/favfood/internal/client/media"
	"github.com/dmitrijs2005/favfood/internal/client/services"
	"github.com/dmitrijs2005/favfood/internal/client/submit"
	"github.com/dmitrijs2005/favfood/internal/filex"
	"github.com/dmitrijs2005/favfood/internal/logging"
	"github.com/spf13/afero"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Screen is the part of the application the user is on.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"
	ScreenHome     Screen = "home"
)

// photoPicker is the device media collaborator.
type photoPicker interface {
	Select(path string) (string, error)
}

type App struct {
	config   *config.Config
	auth     services.AuthService
	profiles services.ProfileService
	picker   photoPicker
	logger   logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu     sync.RWMutex
	mode   Mode
	screen Screen

	loginForm    *form.Form
	registerForm *form.Form
	profileForm  *form.Form

	login         *submit.Controller
	register      *submit.Controller
	profileLoad   *submit.Controller
	profileUpdate *submit.Controller
	signOut       *submit.Controller

	closers []func() error
}

// NewApp wires the CLI: data directory, log file, local database, gRPC
// client and services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(cfg.LogPath(dataDir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.NewTextLogger(logFile, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath(dataDir), logger)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		_ = logFile.Close()
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, err
	}

	auth := services.NewAuthService(apiClient, db, logger)
	profiles := services.NewProfileService(apiClient, auth)
	picker := media.NewPicker(afero.NewOsFs(), media.Encoder{
		MaxDimension: cfg.PhotoMaxDimension,
		Quality:      cfg.PhotoQuality,
	})

	a := newApp(cfg, auth, profiles, picker, logger, os.Stdin, os.Stdout)
	a.closers = []func() error{
		func() error { return auth.Close(context.Background()) },
		db.Close,
		logFile.Close,
	}
	return a, nil
}

func newApp(cfg *config.Config, auth services.AuthService, profiles services.ProfileService,
	picker photoPicker, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:   cfg,
		auth:     auth,
		profiles: profiles,
		picker:   picker,
		logger:   logger.With("module", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
		mode:     ModeOffline,
		screen:   ScreenLogin,

		loginForm:    form.NewLoginForm(),
		registerForm: form.NewRegisterForm(),
		profileForm:  form.NewProfileForm(),
	}
	a.buildControllers()
	return a
}

// Run restores a remembered session, starts the connectivity watcher and
// blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Bienvenido a favfood (escribe 'help' para ver los comandos)")

	if ok, err := a.auth.RestoreSession(ctx); err != nil {
		a.logger.Warn(ctx, "session not restored", "error", err)
	} else if ok {
		a.navigate(ScreenHome)
		a.loadProfile(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.logger, a.getStatus, a.reader, a.out)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) currentScreen() Screen {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.screen
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// navigate switches screens. Leaving a screen discards its inputs.
func (a *App) navigate(to Screen) {
	a.mu.Lock()
	from := a.screen
	a.screen = to
	a.mu.Unlock()

	if from == to {
		return
	}

	switch to {
	case ScreenLogin:
		a.loginForm.Load(nil)
		a.registerForm.Load(nil)
		a.profileForm.Load(nil)
		a.login.Reset()
		a.register.Reset()
		a.profileLoad.Reset()
		a.profileUpdate.Reset()
		a.signOut.Reset()
	case ScreenHome:
		a.loginForm.Load(nil)
		a.login.Reset()
	case ScreenRegister:
		a.registerForm.Load(nil)
		a.register.Reset()
	}
	a.logger.Debug(context.Background(), "navigated", "from", from, "to", to)
}

func (a *App) getStatus() string {
	s := string(a.currentScreen())
	if a.currentScreen() == ScreenHome {
		if email := a.auth.CurrentEmail(); email != "" {
			s += " " + email
		}
	}
	return fmt.Sprintf("(%s %s)", s, a.Mode())
}

// StartOnlineStatusWatcher probes the server every interval and updates
// the mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.checkOnline(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := a.auth.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
