package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("init")
	env.contains(out, "Initialised concord corpus")
	assert.FileExists(t, filepath.Join(env.dir, ".concord", "concord.db"))
	assert.FileExists(t, filepath.Join(env.dir, ".concord", ".gitignore"))
	// config is managed separately via "concord config"
	assert.NoFileExists(t, filepath.Join(env.dir, ".concord", "config.yaml"))

	out = env.run("books")
	env.contains(out, "Genesis")
	env.contains(out, "Revelation")
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("init")
	require.Error(t, err)
	env.contains(out, "already exists")

	env.run("init", "--force")
}

func TestInit_NamedAndExternal(t *testing.T) {
	env := newBareEnv(t)
	other := t.TempDir()

	env.run("init", "--db", "greek")
	assert.FileExists(t, filepath.Join(env.dir, ".concord", "concord-greek.db"))

	env.run("init", "--dir", other)
	assert.FileExists(t, filepath.Join(other, ".concord", "concord.db"))

	out, err := env.runErr("init", "--dir", other, "--local")
	require.Error(t, err)
	env.contains(out, "cannot use --local with --dir")
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("search", "light")
	require.Error(t, err)
	env.contains(out, "concord init")

	// bootstrap commands work without a corpus
	env.run("guide")
	env.run("version")
}
