package log

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/concord/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Use temp directory for test database
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		// Verify database file exists
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project/.concord")

		Log(Entry{
			Source:  "search:ref",
			Author:  "test-user",
			Action:  "lookup",
			Target:  "jn 3:16",
			Count:   3,
			Success: true,
		})

		// Verify entry was written
		db, err := sql.Open(store.DriverName(), DBPath())
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var source, action, target string
		var n int
		var success int
		err = db.QueryRow("SELECT source, action, target, count, success FROM log WHERE id = 1").
			Scan(&source, &action, &target, &n, &success)
		require.NoError(t, err)
		assert.Equal(t, "search:ref", source)
		assert.Equal(t, "lookup", action)
		assert.Equal(t, "jn 3:16", target)
		assert.Equal(t, 3, n)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		// Reset global for clean test
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project/.concord")

		Log(Entry{
			Source:  "corpus:import",
			Action:  "import",
			Target:  "missing.json",
			Success: false,
			Error:   "file not found",
		})

		db, err := sql.Open(store.DriverName(), DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "file not found", errMsg)
	})

	t.Run("log with detail", func(t *testing.T) {
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project/.concord")

		Log(Entry{
			Source:  "search:search",
			Action:  "search",
			Success: true,
			Detail:  map[string]any{"query": "lov*", "translations": 42},
		})

		db, err := sql.Open(store.DriverName(), DBPath())
		require.NoError(t, err)
		defer db.Close()

		var detail string
		err = db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "lov*")
		assert.Contains(t, detail, "42")
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()

		// Should not panic
		Log(Entry{
			Source:  "test:cmd",
			Action:  "test",
			Success: true,
		})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)

		err = Open() // second call should succeed
		require.NoError(t, err)

		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project/.concord")
	h2 := hash("/home/user/project/.concord")
	h3 := hash("/home/user/other/.concord")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expected := filepath.Join(home, ".concord", "log", "concord-log.db")

	// Use default path function
	origDBPath := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = origDBPath }()

	assert.Equal(t, expected, DBPath())
}

func TestBuilder(t *testing.T) {
	// Use temp directory for test database
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("fluent API success", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project/.concord")

		Event("search:ref", "lookup").
			Author("test-user").
			Target("1 cor 13:4").
			Resolved("1 Corinthians 13:4").
			Count(5).
			Write(nil) // success

		db, err := sql.Open(store.DriverName(), DBPath())
		require.NoError(t, err)
		defer db.Close()

		var source, author, action, target, resolved string
		var n, success int
		err = db.QueryRow("SELECT source, author, action, target, resolved, count, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &author, &action, &target, &resolved, &n, &success)
		require.NoError(t, err)
		assert.Equal(t, "search:ref", source)
		assert.Equal(t, "test-user", author)
		assert.Equal(t, "lookup", action)
		assert.Equal(t, "1 cor 13:4", target)
		assert.Equal(t, "1 Corinthians 13:4", resolved)
		assert.Equal(t, 5, n)
		assert.Equal(t, 1, success)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project/.concord")

		testErr := sql.ErrNoRows // use any error
		Event("search:read", "read").
			Author("test-user").
			Target("KJV Gen 99").
			Write(testErr)

		db, err := sql.Open(store.DriverName(), DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, testErr.Error(), errMsg)
	})

	t.Run("fluent API with Detail", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project/.concord")

		Event("search:search", "search").
			Author("test-user").
			Detail("query", "\"the lord\"").
			Detail("translations", 42).
			Write(nil)

		db, err := sql.Open(store.DriverName(), DBPath())
		require.NoError(t, err)
		defer db.Close()

		var detail string
		err = db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "the lord")
		assert.Contains(t, detail, "42")
	})
}

func TestRecentAndPrune(t *testing.T) {
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string { return filepath.Join(tmpDir, "log", "test.db") }
	defer func() { dbPathFunc = origDBPath }()

	_, err := Recent(10, time.Time{})
	require.ErrorIs(t, err, ErrNotOpen)

	require.NoError(t, Open())
	defer Close()

	now := time.Now()
	SetProject("/other/.concord")
	Log(Entry{Source: "search:search", Action: "search", Start: now.Unix(), End: now.Unix(), Success: true})

	SetProject("/test/project/.concord")
	old := now.Add(-10 * 24 * time.Hour).Unix()
	Log(Entry{Source: "corpus:import", Action: "import", Target: "kjv.json", Start: old, End: old + 2, Count: 6, Success: true})
	Log(Entry{Source: "search:ref", Action: "lookup", Target: "jn 3:16", Start: now.Unix(), End: now.Unix(),
		Success: false, Error: "boom", Detail: map[string]any{"translations": "KJV"}})

	recs, err := Recent(0, time.Time{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "search:ref", recs[0].Source)
	assert.False(t, recs[0].Success)
	assert.Equal(t, "boom", recs[0].Error)
	assert.Equal(t, "KJV", recs[0].Detail["translations"])
	assert.Equal(t, 6, recs[1].Count)
	assert.Equal(t, 2*time.Second, recs[1].Duration)

	recs, err = Recent(10, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	n, err := Prune(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	recs, err = Recent(1, time.Time{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "lookup", recs[0].Action)
}

func TestQueries(t *testing.T) {
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string { return filepath.Join(tmpDir, "log", "test.db") }
	defer func() { dbPathFunc = origDBPath }()

	_, err := Queries(10, "search:search")
	require.ErrorIs(t, err, ErrNotOpen)

	require.NoError(t, Open())
	defer Close()

	now := time.Now().Unix()
	search := func(source, target string) {
		Log(Entry{Source: source, Action: "search", Target: target, Start: now, End: now, Success: true})
	}

	SetProject("/other/.concord")
	search("search:search", "elsewhere")

	SetProject("/test/project/.concord")
	for i := range 12 {
		search("search:search", fmt.Sprintf("q%d", i))
	}
	search("search:ref", " q3 ")
	search("corpus:import", "kjv.json")
	search("search:search", "")

	got, err := Queries(10, "search:search", "search:ref")
	require.NoError(t, err)
	assert.Equal(t, []string{"q3", "q11", "q10", "q9", "q8", "q7", "q6", "q5", "q4", "q2"}, got)

	got, err = Queries(2, "search:ref")
	require.NoError(t, err)
	assert.Equal(t, []string{"q3"}, got)

	got, err = Queries(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
