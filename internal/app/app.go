package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/campsite/internal/availability"
	"github.com/avstrong/campsite/internal/config"
	"github.com/avstrong/campsite/internal/idgen/clock"
	"github.com/avstrong/campsite/internal/idgen/simple"
	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/migration"
	"github.com/avstrong/campsite/internal/pricing"
	"github.com/avstrong/campsite/internal/rates"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
	"github.com/avstrong/campsite/internal/storage/file"
	"github.com/avstrong/campsite/internal/storage/memory"
	"github.com/avstrong/campsite/internal/storage/postgres"
	"github.com/avstrong/campsite/internal/tools"
	"github.com/avstrong/campsite/internal/transport/web"
)

type storage interface {
	Load(ctx context.Context) ([]*reservation.Record, error)
	Save(ctx context.Context, records []*reservation.Record) error
}

type idGenerator interface {
	GetID(ctx context.Context) (int64, error)
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

var noClose = closerFunc(func() error { return nil })

func loadRates(conf *config.Config) (*rates.Table, error) {
	if conf.RatesFile == "" {
		return rates.Default()
	}

	return rates.LoadFile(conf.RatesFile)
}

// openStorage returns the configured backend, an id generator suited to it
// and a closer for whatever the backend holds open.
func openStorage(ctx context.Context, conf config.Storage, l *logger.Logger) (storage, idGenerator, io.Closer, error) {
	switch conf.Kind {
	case config.StorageMemory:
		return memory.New(memory.Config{L: l}), simple.New(0), noClose, nil
	case config.StoragePostgres:
		store, err := postgres.New(ctx, postgres.Config{L: l, DSN: conf.DSN})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres store: %w", err)
		}

		return store, clock.New(), store, nil
	default:
		store, err := file.New(file.Config{L: l, Path: conf.ReservationsFile})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open file store: %w", err)
		}

		return store, clock.New(), noClose, nil
	}
}

func Run(conf *config.Config, l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	table, err := loadRates(conf)
	if err != nil {
		return fmt.Errorf("load rate tables: %w", err)
	}

	store, idGen, closer, err := openStorage(ctx, conf.Storage, l)
	if err != nil {
		return err
	}

	defer func() {
		if err := closer.Close(); err != nil {
			l.LogErrorf("Failed to close reservation store: %v", err.Error())
		}
	}()

	l.LogInfo("Reservation store %q is ready", conf.Storage.Kind)

	reservations := reservation.New(l, store, idGen)

	if conf.SeedDemo {
		if err := migration.Up(ctx, l, reservations); err != nil {
			return fmt.Errorf("up demo migration: %w", err)
		}
	}

	dispatcher := tools.New(tools.Config{
		L:            l,
		Parser:       slots.New(table.AddOnNames()),
		Pricing:      pricing.New(table),
		Availability: availability.New(table, reservations),
		Reservations: reservations,
	})

	serverLog := l.Writer()
	defer serverLog.Close()

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.New(serverLog, "", 0),
		Host:              conf.HTTP.Host,
		Port:              conf.HTTP.Port,
		ReadHeaderTimeout: conf.HTTP.ReadHeaderTimeout,
		LivenessEndpoint:  "/liveness",
		AllowedOrigins:    conf.HTTP.AllowedOrigins,
	}

	srv, err := web.New(ctx, webConf, dispatcher)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	l.LogInfo("Application is running on %v...", conf.HTTP.Addr())

	if err := serve(ctx, srv.Srv(), l); err != nil {
		return err
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}

// serve blocks until srv stops. A shutdown triggered by ctx is not an error.
func serve(ctx context.Context, srv *http.Server, l *logger.Logger) error {
	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run http server: %w", err)
	}

	return nil
}
