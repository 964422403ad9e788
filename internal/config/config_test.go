package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	assert.False(t, c.CaseSensitive())
	assert.False(t, c.Unique())
	assert.False(t, c.Compress())
	assert.False(t, c.Expand())
	assert.True(t, c.Synonyms())
	assert.True(t, c.Affixes())
	assert.Equal(t, DefaultWindow, c.Window())
	open, close := c.Delimiters()
	assert.Equal(t, "[", open)
	assert.Equal(t, "]", close)
}

func TestSetGet(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Set("search.unique", "TRUE"))
	require.NoError(t, c.Set("reading.window", "25"))
	require.NoError(t, c.Set("highlight.open", "<<"))
	require.NoError(t, c.Set("author.name", "reader"))

	for key, want := range map[string]string{
		"search.unique":   "true",
		"reading.window":  "25",
		"highlight.open":  "<<",
		"highlight.close": "]",
		"author.name":     "reader",
	} {
		got, err := c.Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
	assert.True(t, c.IsSet("search.unique"))
	assert.False(t, c.IsSet("search.compress"))
	assert.False(t, c.IsSet("highlight.close"))
}

func TestSetInvalid(t *testing.T) {
	c := &Config{}
	assert.ErrorIs(t, c.Set("search.unique", "yes"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("reading.window", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("reading.window", "abc"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("translations.KJV.order", "-1"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("nope", "1"), ErrUnknownKey)
	_, err := c.Get("translations.KJV.colour")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestTranslationKeys(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Set("translations.kjv.enabled", "false"))
	require.NoError(t, c.Set("translations.KJV.order", "2"))

	assert.Len(t, c.Translations, 1)
	p := c.TranslationPref("kjv")
	require.NotNil(t, p.Enabled)
	require.NotNil(t, p.Order)
	assert.False(t, *p.Enabled)
	assert.Equal(t, 2, *p.Order)

	v, err := c.Get("translations.ASV.enabled")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	assert.True(t, IsValidKey("translations.ASV.order"))
	assert.False(t, IsValidKey("translations..order"))

	all := c.All()
	assert.Equal(t, "false", all["translations.KJV.enabled"])
	assert.Equal(t, "2", all["translations.KJV.order"])
	assert.Equal(t, "10", all["reading.window"])
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	c := &Config{}
	require.NoError(t, c.Set("search.compress", "true"))
	require.NoError(t, c.Set("translations.ASV.order", "1"))
	require.NoError(t, c.saveToPath(path))

	got, err := loadPath(path, ScopeLocal)
	require.NoError(t, err)
	assert.True(t, got.Compress())
	assert.Equal(t, 1, *got.TranslationPref("ASV").Order)
	assert.Equal(t, ScopeLocal, got.Scope())
}

func TestLoadMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()

	c, err := loadPath(filepath.Join(dir, "missing.yaml"), ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, DefaultWindow, c.Window())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("search: [unclosed"), 0644))
	_, err = loadPath(bad, ScopeGlobal)
	assert.ErrorContains(t, err, "malformed config file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("reading:\n  window: 0\n"), 0644))
	_, err = loadPath(invalid, ScopeGlobal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestForget(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Set("translations.kjv.enabled", "false"))

	assert.True(t, c.Forget("Kjv"))
	assert.False(t, c.Forget("KJV"))
	assert.True(t, c.TranslationPref("KJV").Enabled == nil)
}
