package cli

import (
	"context"
	"os"

	"github.com/pocketbase/dbx"

	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/registry"
	"github.com/ericfisherdev/happyplace/internal/repository"
	"github.com/ericfisherdev/happyplace/internal/services"
)

// local is the in-process stack commands use when no server is configured.
type local struct {
	db        *dbx.DB
	listings  *services.ListingService
	inquiries *services.InquiryService
	render    *services.RenderService
	log       *logger.Logger
}

func cliLogger() *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: os.Stderr})
	if err != nil {
		return logger.Nop()
	}
	return log
}

// openLocal opens and migrates the database named in s.
func openLocal(ctx context.Context, s Settings) (*local, error) {
	db, err := repository.OpenSQLite(s.Database)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log := cliLogger()
	repo := repository.NewSQLiteListingRepository(db)
	listings := services.NewListingService(repo, nil, log)
	reg := registry.New(registry.Deps{Listings: listings, MapboxToken: s.MapboxToken, Logger: log})
	return &local{
		db:        db,
		listings:  listings,
		inquiries: services.NewInquiryService(repository.NewSQLiteInquiryRepository(db), repo, log),
		render:    services.NewRenderService(reg, nil, log),
		log:       log,
	}, nil
}

func (l *local) Close() error {
	return l.db.Close()
}
