// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go handles YAML structure and loading; this file
// serves the CLI and MCP, where config is addressed by dotted keys such as
// "search.unique" or "translations.KJV.order".
//
// Pointers are used for optional fields so "not set" (nil) differs from
// "explicitly set to zero/false"; defaults apply only to unset values.

package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

var boolKeys = []string{
	"search.case_sensitive", "search.unique", "search.compress",
	"search.expand", "search.synonyms", "search.affixes",
}

// ValidKeys returns all fixed configuration keys. Per-translation keys
// (translations.<ABBR>.enabled, translations.<ABBR>.order) are valid for
// any abbreviation and are not listed.
func ValidKeys() []string {
	keys := []string{"author.name", "author.email"}
	keys = append(keys, boolKeys...)
	return append(keys, "reading.window", "highlight.open", "highlight.close")
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	if _, _, ok := translationKey(key); ok {
		return true
	}
	return slices.Contains(ValidKeys(), key)
}

// translationKey splits "translations.<ABBR>.<field>".
func translationKey(key string) (abbrev, field string, ok bool) {
	rest, found := strings.CutPrefix(key, "translations.")
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(rest, ".")
	if i <= 0 {
		return "", "", false
	}
	abbrev, field = strings.ToUpper(rest[:i]), rest[i+1:]
	if field != "enabled" && field != "order" {
		return "", "", false
	}
	return abbrev, field, true
}

func (c *Config) boolField(key string) **bool {
	switch key {
	case "search.case_sensitive":
		return &c.Search.CaseSensitive
	case "search.unique":
		return &c.Search.Unique
	case "search.compress":
		return &c.Search.Compress
	case "search.expand":
		return &c.Search.Expand
	case "search.synonyms":
		return &c.Search.Synonyms
	case "search.affixes":
		return &c.Search.Affixes
	}
	return nil
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	if abbrev, field, ok := translationKey(key); ok {
		t := c.TranslationPref(abbrev)
		if field == "enabled" {
			return strconv.FormatBool(boolOr(t.Enabled, true)), nil
		}
		if t.Order == nil {
			return "", nil
		}
		return strconv.Itoa(*t.Order), nil
	}

	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "search.case_sensitive":
		return strconv.FormatBool(c.CaseSensitive()), nil
	case "search.unique":
		return strconv.FormatBool(c.Unique()), nil
	case "search.compress":
		return strconv.FormatBool(c.Compress()), nil
	case "search.expand":
		return strconv.FormatBool(c.Expand()), nil
	case "search.synonyms":
		return strconv.FormatBool(c.Synonyms()), nil
	case "search.affixes":
		return strconv.FormatBool(c.Affixes()), nil
	case "reading.window":
		return strconv.Itoa(c.Window()), nil
	case "highlight.open":
		open, _ := c.Delimiters()
		return open, nil
	case "highlight.close":
		_, close := c.Delimiters()
		return close, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

func parseBool(key, value string) (bool, error) {
	v := strings.ToLower(value)
	if v != "true" && v != "false" {
		return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
	}
	return v == "true", nil
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	if abbrev, field, ok := translationKey(key); ok {
		return c.setTranslation(key, abbrev, field, value)
	}
	if p := c.boolField(key); p != nil {
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		*p = &b
		return nil
	}

	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "reading.window":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinWindow || n > MaxWindow {
			return fmt.Errorf("%w: reading.window must be between %d and %d", ErrInvalidValue, MinWindow, MaxWindow)
		}
		c.Reading.Window = &n
	case "highlight.open":
		c.Highlight.Open = value
	case "highlight.close":
		c.Highlight.Close = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func (c *Config) setTranslation(key, abbrev, field, value string) error {
	t := c.TranslationPref(abbrev)
	switch field {
	case "enabled":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		t.Enabled = &b
	case "order":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
		}
		t.Order = &n
	}
	if c.Translations == nil {
		c.Translations = make(map[string]Translation)
	}
	for k := range c.Translations {
		if strings.EqualFold(k, abbrev) {
			delete(c.Translations, k)
		}
	}
	c.Translations[abbrev] = t
	return nil
}

// All returns all configuration values as a map, including a pair of keys
// for every configured translation.
func (c *Config) All() map[string]string {
	all := make(map[string]string)
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		all[k] = v
	}
	for _, abbrev := range slices.Sorted(maps.Keys(c.Translations)) {
		for _, field := range []string{"enabled", "order"} {
			k := "translations." + strings.ToUpper(abbrev) + "." + field
			v, _ := c.Get(k)
			all[k] = v
		}
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	if abbrev, field, ok := translationKey(key); ok {
		t := c.TranslationPref(abbrev)
		if field == "enabled" {
			return t.Enabled != nil
		}
		return t.Order != nil
	}
	if p := c.boolField(key); p != nil {
		return *p != nil
	}
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "reading.window":
		return c.Reading.Window != nil
	case "highlight.open":
		return c.Highlight.Open != ""
	case "highlight.close":
		return c.Highlight.Close != ""
	default:
		return false
	}
}

// Forget removes the preferences stored for a translation. Reports whether
// anything was removed.
func (c *Config) Forget(abbrev string) bool {
	removed := false
	for k := range c.Translations {
		if strings.EqualFold(k, abbrev) {
			delete(c.Translations, k)
			removed = true
		}
	}
	return removed
}
