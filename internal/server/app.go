// Package server initializes and runs the booking server. It opens the
// store selected by the DSN, runs migrations, seeds default accounts,
// handles graceful shutdown and starts the TCP line-protocol server.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/apptbook/internal/cryptox"
	"github.com/dmitrijs2005/apptbook/internal/logging"
	"github.com/dmitrijs2005/apptbook/internal/server/config"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/apptbook/internal/server/services"
	"github.com/dmitrijs2005/apptbook/internal/server/tcp"
)

// seedAccount is created at startup when seeding is on.
type seedAccount struct {
	userName string
	password string
	role     models.Role
}

var defaultAccounts = []seedAccount{
	{"admin", "admin123", models.RoleAdmin},
	{"employee1", "emp123", models.RoleEmployee},
}

type App struct {
	config             *config.Config
	logger             logging.Logger
	repomanager        repomanager.RepositoryManager
	userService        *services.UserService
	appointmentService *services.AppointmentService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := repomanager.New(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := cryptox.NewHasher(c.Pepper)

	us := services.NewUserService(rm, hasher)
	as := services.NewAppointmentService(rm)

	return &App{config: c, logger: logger, repomanager: rm, userService: us, appointmentService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare applies migrations and seeds default accounts.
func (app *App) prepare(ctx context.Context) error {
	if err := app.repomanager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if !app.config.SeedUsers {
		return nil
	}
	for _, a := range defaultAccounts {
		created, err := app.userService.EnsureUser(ctx, a.userName, a.password, a.role)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", a.userName, err)
		}
		if created {
			app.logger.Info(ctx, "Seeded account", "username", a.userName, "role", a.role.String())
		}
	}
	return nil
}

func (app *App) startTCPServer(ctx context.Context, cancelFunc context.CancelFunc) error {

	s, err := tcp.NewServer(app.config.ListenAddr, app.logger, app.userService, app.appointmentService, tcp.Options{
		MaxConnections:  app.config.MaxConnections,
		IdleTimeout:     app.config.IdleTimeout,
		ShutdownTimeout: app.config.ShutdownTimeout,
	})
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return fmt.Errorf("tcp server: %w", err)
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.prepare(ctx); err != nil {
		return err
	}

	var (
		wg     sync.WaitGroup
		tcpErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		tcpErr = app.startTCPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return tcpErr
}
