package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	env := newCorpusEnv(t)

	out := env.run("translations")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	env.contains(lines[0], "ORDER")
	env.contains(lines[1], "KJV")
	env.contains(lines[1], "King James Version")
	env.contains(lines[2], "ASV")
}

func TestTranslations_Ranking(t *testing.T) {
	env := newCorpusEnv(t)
	env.run("config", "--local", "translations.ASV.order", "1")
	env.run("config", "--local", "translations.KJV.order", "2")

	out := env.run("search", "earth", "-u")
	env.contains(out, "ASV Gen 1:1")
	env.notContains(out, "KJV Gen 1:1")

	env.run("config", "--local", "translations.ASV.enabled", "false")
	out = env.run("search", "earth")
	env.notContains(out, "ASV")

	// named translations are searched even when disabled
	out = env.run("search", "earth", "-t", "ASV")
	env.contains(out, "ASV Gen 1:1")
}

func TestTranslations_Delete(t *testing.T) {
	env := newCorpusEnv(t)
	env.run("config", "--local", "translations.ASV.order", "1")

	out := env.run("translations", "rm", "ASV")
	env.contains(out, "Deleted ASV (3 verse text(s))")

	out = env.run("translations", "-o", "json")
	var ts []struct {
		Abbrev string `json:"abbrev"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ts))
	require.Len(t, ts, 1)
	assert.Equal(t, "KJV", ts[0].Abbrev)

	// preferences of the deleted translation are forgotten
	out = env.run("config")
	env.notContains(out, "translations.ASV")

	_, err := env.runErr("translations", "rm", "ASV")
	assert.Error(t, err)
}

func TestBooks(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("books")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 66)
	env.contains(out, "1Co")

	out = env.run("books", "-o", "json")
	var bs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &bs))
	assert.Len(t, bs, 66)
}
