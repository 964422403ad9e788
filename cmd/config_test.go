package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "author.name", "Test User")

		out := env.run("config", "author.name")
		env.contains(out, "Test User")
	})

	t.Run("global by default", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "search.compress", "true")
		env.contains(out, "(global)")
		assert.FileExists(t, filepath.Join(env.home, ".concord", "config.yaml"))
	})

	t.Run("local when asked", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "--local", "reading.window", "5")
		env.contains(out, "(local)")
		assert.FileExists(t, filepath.Join(env.dir, ".concord", "config.yaml"))

		out = env.run("config")
		env.contains(out, "reading.window: 5")
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"author name", "author.name", "New Name"},
		{"unique", "search.unique", "true"},
		{"window", "reading.window", "25"},
		{"highlight", "highlight.open", "<<"},
		{"translation order", "translations.KJV.order", "3"},
		{"translation enabled", "translations.web.enabled", "false"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.run("config", tc.key, tc.value)

			out := env.run("config", tc.key)
			env.contains(out, tc.value)
		})
	}
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid key", "invalid.key", "value"},
		{"invalid bool", "search.unique", "maybe"},
		{"window out of range", "reading.window", "0"},
		{"order not positive", "translations.KJV.order", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.runErr("config", tc.key, tc.value)
			assert.Error(t, err)
		})
	}
}

func TestHighlightDelimiters(t *testing.T) {
	env := newCorpusEnv(t)
	env.run("config", "--local", "highlight.open", "<")
	env.run("config", "--local", "highlight.close", ">")

	out := env.run("search", "beginning", "-t", "KJV")
	env.contains(out, "In the <beginning> God")
}
