/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until first
// command execution, so they can declare commands before a corpus exists.
// The store and engine are created once and shared across all extensions
// via the Context.

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/config"
	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/repo"
	"github.com/jpl-au/concord/internal/store"
)

// noStoreCommands lists commands that bypass automatic corpus
// initialisation. Built from bootstrap commands plus extension-declared
// storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip corpus
// initialisation.
//
// Bootstrap commands (init, guide, config, help, completion) must work
// before "concord init" has run. Extensions add their own through
// extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
		"concord":    true, // bare root prints help
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

var (
	extContext extension.Context
	extStore   *store.SQLiteStore
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the corpus, builds the engine and injects both
// into extensions. It runs at most once per process.
//
// repo.ErrNotInitialised is returned as-is so the user sees the hint to
// run "concord init".
func initExtensions(ctx context.Context) error {
	initOnce.Do(func() {
		path, err := repo.Resolve(DB(), Dir())
		if err != nil {
			initErr = err
			return
		}

		s, err := store.Open(path)
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extStore = s

		log.SetProject(filepath.Dir(path))

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		eng, err := engine.New(ctx, engine.PathOpener(path), engine.OptionsFromConfig(cfg))
		if err != nil {
			initErr = err
			return
		}

		extContext = extension.NewContext(eng, s, cfg)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
