package ui

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/api"
	"github.com/javiermolinar/moments/internal/config"
	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/session"
	"github.com/javiermolinar/moments/internal/wordfetch"
)

// services is everything a command needs to fetch words.
type services struct {
	catalog    *language.Catalog
	store      *session.SQLite
	client     *api.Client
	controller *wordfetch.Controller
	logger     *zap.Logger
}

// openServices wires the catalog, session store, API client, and controller from cfg.
// Failure notifications from the controller go to sink.
func openServices(cfg *config.Config, logger *zap.Logger, sink notify.Sink) (*services, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	store, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, session.NewIdentity(store),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger.Named("api")),
	)

	ctrl := wordfetch.New(client,
		wordfetch.WithInterval(cfg.RefreshInterval()),
		wordfetch.WithSink(sink),
		wordfetch.WithLogger(logger.Named("wordfetch")),
	)

	return &services{
		catalog:    catalog,
		store:      store,
		client:     client,
		controller: ctrl,
		logger:     logger,
	}, nil
}

// newSelector builds the language picker; committed languages go to the controller.
func (s *services) newSelector(cfg *config.Config, sink notify.Sink) *language.Selector {
	return language.NewSelector(s.catalog, cfg.Language.Default,
		language.WithSetter(s.controller),
		language.WithSink(sink),
		language.WithDefaultCountry(cfg.Language.DefaultCountry),
		language.WithLogger(s.logger.Named("language")),
	)
}

// Close stops the controller and clears the session store.
func (s *services) Close() error {
	return errors.Join(s.controller.Close(), s.store.Close())
}
