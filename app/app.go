package app

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"tender-marketplace-api/config"
	"tender-marketplace-api/internal/controller"
	"tender-marketplace-api/internal/repo"
	"tender-marketplace-api/internal/service"
	"tender-marketplace-api/pkg/httpserver"
	"tender-marketplace-api/pkg/logger"
	"tender-marketplace-api/pkg/postgres"
)

func runMigrations(pg *postgres.Postgres, sourceURL string, l *zap.SugaredLogger) error {
	driver, err := pgmigrate.WithInstance(pg.DB, &pgmigrate.Config{})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			l.Info("migrations: no change")
			return nil
		}

		return err
	}

	l.Info("migrations: applied")
	return nil
}

func Run() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync() //nolint:errcheck

	l.Info("connecting to database")
	pg, err := postgres.New(cfg.PostgresConn)
	if err != nil {
		l.Fatalw("database connection failed", "error", err)
	}
	defer pg.Close()

	l.Info("running migrations")
	if err := runMigrations(pg, cfg.MigrationsPath, l); err != nil {
		l.Fatalw("migrations failed", "error", err)
	}

	repositories := repo.NewRepositories(pg)
	services := service.NewServices(repositories)

	handler := echo.New()
	controller.SetupRoutes(handler, services, l)

	l.Infow("starting server", "address", cfg.ServerAddress)
	server := httpserver.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Infow("got signal", "signal", s.String())
	case err := <-server.Notify():
		l.Errorw("server error", "error", err)
	}

	l.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		l.Errorw("shutdown error", "error", err)
		return
	}
	l.Info("shutdown complete")
}
