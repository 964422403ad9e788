package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/concord/internal/query"
	"github.com/jpl-au/concord/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "concord-store-test-*")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return s, cleanup
}

func kjv() store.ImportData {
	return store.ImportData{
		Abbrev:   "KJV",
		Name:     "King James Version",
		Checksum: "kjv-sum",
		Verses: []store.ImportVerse{
			{Book: "Joh", Chapter: 3, Verse: 16, Text: "For God so loved the world, that he gave his only begotten Son"},
			{Book: "Gen", Chapter: 1, Verse: 1, Text: "In the beginning God created the heaven and the earth."},
			{Book: "Gen", Chapter: 1, Verse: 2, Text: "And the earth was without form, and void."},
			{Book: "Gen", Chapter: 1, Verse: 3, Text: "And God said, Let there be light: and there was light."},
			{Book: "1Co", Chapter: 13, Verse: 4, Text: "Charity suffereth long, and is kind; charity envieth not"},
			{Book: "Gen", Chapter: 2, Verse: 1, Text: "Thus the heavens and the earth were finished."},
		},
	}
}

func seed(t *testing.T, s *store.SQLiteStore, d store.ImportData) {
	t.Helper()
	n, err := s.ImportTranslation(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, int64(len(d.Verses)), n)
}

func TestStore_InitSeedsBooks(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	require.NoError(t, s.Init(), "Init is idempotent")

	bs, err := s.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, bs, 66)
	assert.Equal(t, "Genesis", bs[0].Name)
	assert.Equal(t, "Revelation", bs[65].Name)
	assert.Equal(t, 46, bs[45].Order)
}

func TestStore_ImportAndTranslations(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, s, kjv())

	ts, err := s.Translations(ctx)
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "KJV", ts[0].Abbrev)
	assert.Equal(t, "King James Version", ts[0].Name)
	assert.Equal(t, int64(6), ts[0].Verses)
	assert.NotZero(t, ts[0].ImportedAt)

	got, err := s.TranslationByAbbrev(ctx, "kjv")
	require.NoError(t, err)
	assert.Equal(t, "KJV", got.Abbrev)

	got, err = s.TranslationByChecksum(ctx, "kjv-sum")
	require.NoError(t, err)
	assert.Equal(t, "KJV", got.Abbrev)

	_, err = s.TranslationByChecksum(ctx, "other")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.TranslationByAbbrev(ctx, "ASV")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ImportReplaces(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, s, kjv())
	seed(t, s, store.ImportData{
		Abbrev: "KJV",
		Name:   "KJV revised",
		Verses: []store.ImportVerse{{Book: "Gen", Chapter: 1, Verse: 1, Text: "replaced"}},
	})

	ts, err := s.Translations(ctx)
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "KJV revised", ts[0].Name)
	assert.Equal(t, int64(1), ts[0].Verses)

	vs, err := s.Window(ctx, "KJV", "Genesis", 1, 1, 0)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "replaced", vs[0].Text)
}

func TestStore_ImportErrors(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.ImportTranslation(ctx, store.ImportData{Abbrev: "X"})
	assert.ErrorIs(t, err, store.ErrEmptyImport)

	_, err = s.ImportTranslation(ctx, store.ImportData{
		Abbrev: "X",
		Verses: []store.ImportVerse{{Book: "Nope", Chapter: 1, Verse: 1, Text: "x"}},
	})
	assert.ErrorIs(t, err, store.ErrUnknownBook)

	ts, err := s.Translations(ctx)
	require.NoError(t, err)
	assert.Empty(t, ts, "failed import rolls back")
}

func TestStore_LookupRange(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	seed(t, s, kjv())

	vs, err := s.LookupRange(ctx, "KJV", query.VerseRange{Book: "genesis", Chapter: 1, Start: 1, End: 2})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, store.Verse{Translation: "KJV", Book: "Gen", Chapter: 1, Verse: 1,
		Text: "In the beginning God created the heaven and the earth."}, vs[0])
	assert.Equal(t, 2, vs[1].Verse)

	vs, err = s.LookupRange(ctx, "KJV", query.VerseRange{Book: "Genesis", Chapter: 1, Start: 3, End: 1})
	require.NoError(t, err)
	assert.Empty(t, vs, "reversed range")

	vs, err = s.LookupRange(ctx, "KJV", query.VerseRange{Book: "Genesis", Chapter: 99, Start: 1, End: 1})
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = s.LookupRange(ctx, "ASV", query.VerseRange{Book: "Genesis", Chapter: 1, Start: 1, End: 1})
	require.NoError(t, err)
	assert.Empty(t, vs, "unknown translation")
}

func TestStore_Window(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	seed(t, s, kjv())

	vs, err := s.Window(ctx, "KJV", "Gen", 1, 2, 10)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, 2, vs[0].Verse)
	assert.Equal(t, 3, vs[1].Verse)

	vs, err = s.Window(ctx, "KJV", "genesis", 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, vs, 1)

	vs, err = s.Window(ctx, "KJV", "Genesis", 1, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, vs, "does not cross chapters")
}

func TestStore_SearchWords(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	seed(t, s, kjv())

	refs := func(q string, cs bool) []string {
		t.Helper()
		vs, err := s.SearchWords(ctx, "KJV", query.Compile(q, cs))
		require.NoError(t, err)
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
		}
		return out
	}

	assert.Equal(t, []string{"Gen 1:1", "Gen 1:3", "Joh 3:16"}, refs("god", false))
	assert.Equal(t, []string{"Gen 1:1", "Gen 1:2", "Gen 2:1"}, refs("earth", false))
	assert.Equal(t, []string{"Gen 1:1"}, refs("god earth", false))
	assert.Equal(t, []string{"Gen 1:2", "Gen 2:1"}, refs("earth !god", false))
	assert.Equal(t, []string{"Gen 1:1", "Gen 1:3", "Joh 3:16", "1Co 13:4"}, refs("god OR charity", false))
	assert.Equal(t, []string{"Gen 1:1", "Gen 2:1"}, refs("heaven*", false))
	assert.Equal(t, []string{"Gen 1:3"}, refs("l?ght", false))
	assert.Equal(t, []string{"Joh 3:16"}, refs(`"so loved"`, false))
	assert.Empty(t, refs("", false))
	assert.Empty(t, refs("AND", false))
}

func TestStore_SearchWordsCaseSensitive(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	seed(t, s, kjv())

	vs, err := s.SearchWords(ctx, "KJV", query.Compile("Charity", true))
	require.NoError(t, err)
	require.Len(t, vs, 1)

	vs, err = s.SearchWords(ctx, "KJV", query.Compile("CHARITY", true))
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = s.SearchWords(ctx, "KJV", query.Compile("CHARITY", false))
	require.NoError(t, err)
	assert.Len(t, vs, 1)
}

func TestStore_SearchAgreesWithMatch(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	d := kjv()
	seed(t, s, d)

	queries := []string{"god", "the AND earth", "!god", "light OR void", "be* !light", `"the earth"`, "h?aven", "And"}
	for _, q := range queries {
		for _, cs := range []bool{false, true} {
			c := query.Compile(q, cs)
			vs, err := s.SearchWords(ctx, "KJV", c)
			require.NoError(t, err)

			want := 0
			for _, v := range d.Verses {
				if c.Match(v.Text) {
					want++
				}
			}
			assert.Len(t, vs, want, "%q case=%v", q, cs)
		}
	}
}

func TestStore_DeleteAndVacuum(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	seed(t, s, kjv())

	n, err := s.DeleteTranslation(ctx, "kjv")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	_, err = s.DeleteTranslation(ctx, "kjv")
	assert.ErrorIs(t, err, store.ErrNotFound)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Translations)
	assert.Equal(t, int64(66), st.Books)
	assert.Equal(t, int64(6), st.Orphans)

	n, err = s.Vacuum(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	n, err = s.Vacuum(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Verses)
	require.NoError(t, s.Checkpoint(ctx))
}

func TestStore_Subjects(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	sub, created, err := s.CreateSubject(ctx, " Faith ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Faith", sub.Name)

	sub, created, err = s.CreateSubject(ctx, "faith")
	require.NoError(t, err)
	assert.False(t, created, "names are matched case-insensitively")
	assert.Equal(t, "Faith", sub.Name)

	_, _, err = s.CreateSubject(ctx, "  ")
	assert.ErrorIs(t, err, store.ErrSubjectName)

	heb := store.Verse{Translation: "KJV", Book: "Heb", Chapter: 11, Verse: 1, Text: "Now faith is the substance"}
	jas := store.Verse{Translation: "KJV", Book: "Jas", Chapter: 2, Verse: 17, Text: "Even so faith"}
	hebASV := heb
	hebASV.Translation = "ASV"

	n, err := s.AddSubjectVerses(ctx, "Faith", []store.Verse{heb, jas})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.AddSubjectVerses(ctx, "Faith", []store.Verse{jas, hebASV})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "a verse already held for the same translation is skipped")

	vs, err := s.SubjectVerses(ctx, "FAITH")
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, "Heb", vs[0].Book)
	assert.Equal(t, "Jas", vs[1].Book)
	assert.Equal(t, "ASV", vs[2].Translation, "new verses go after the last one")

	require.NoError(t, s.CommentSubjectVerse(ctx, "Faith", vs[1].ID, "  works  "))
	require.NoError(t, s.RemoveSubjectVerse(ctx, "Faith", vs[0].ID))
	assert.ErrorIs(t, s.RemoveSubjectVerse(ctx, "Faith", vs[0].ID), store.ErrSubjectVerseNotFound)

	vs, err = s.SubjectVerses(ctx, "Faith")
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "works", vs[0].Comment)

	count, err := s.SubjectVersesFor(ctx, "asv")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, _, err = s.CreateSubject(ctx, "Grace")
	require.NoError(t, err)
	subs, err := s.Subjects(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Faith", subs[0].Name)
	assert.Equal(t, int64(2), subs[0].Verses)
	assert.Equal(t, int64(0), subs[1].Verses)

	removed, err := s.DeleteSubject(ctx, "Faith")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = s.SubjectVerses(ctx, "Faith")
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)
	_, err = s.AddSubjectVerses(ctx, "Faith", []store.Verse{heb})
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)
}

func TestStore_SubjectsSurviveTranslationDelete(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, s, kjv())
	vs, err := s.LookupRange(ctx, "KJV", query.VerseRange{Book: "John", Chapter: 3, Start: 16, End: 16})
	require.NoError(t, err)
	require.Len(t, vs, 1)

	_, _, err = s.CreateSubject(ctx, "Love")
	require.NoError(t, err)
	_, err = s.AddSubjectVerses(ctx, "Love", vs)
	require.NoError(t, err)

	_, err = s.DeleteTranslation(ctx, "KJV")
	require.NoError(t, err)
	_, err = s.Vacuum(ctx, false)
	require.NoError(t, err)

	held, err := s.SubjectVerses(ctx, "Love")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, vs[0].Text, held[0].Text)
}
