// context.go defines the Context interface for extension access to concord
// internals.
//
// Extensions receive Context during Init(), not at construction, so they
// can register commands before a corpus has been discovered.

package extension

import (
	"github.com/jpl-au/concord/internal/config"
	"github.com/jpl-au/concord/internal/service"
	"github.com/jpl-au/concord/internal/store"
)

// Context provides extensions controlled access to concord internals.
type Context interface {
	// Service answers verse queries.
	Service() service.Service

	// Store exposes the corpus for catalogue, import and maintenance
	// commands.
	Store() store.Store

	// Config returns user configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	st  store.Store
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, st store.Store, cfg *config.Config) Context {
	return &extContext{
		svc: svc,
		st:  st,
		cfg: cfg,
	}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Store() store.Store { return c.st }

func (c *extContext) Config() *config.Config { return c.cfg }
