package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/jpl-au/concord/internal/importer"
	"github.com/jpl-au/concord/internal/query"
	"github.com/jpl-au/concord/internal/store"
)

const kjvJSON = `{
  "translation_info": {"abbrev": "kjv", "name": "King James Version"},
  "books": {
    "Joh": {"name": "John", "chapters": {"3": {"16": "For God so loved the world"}}},
    "Gen": {"name": "Genesis", "chapters": {
      "1": {"2": "And the earth was without form", "1": "In the beginning God created the heaven and the earth.", "x": "ignored"},
      "2": {"1": "   "}
    }},
    "Zzz": {"name": "Apocrypha", "chapters": {"1": {"1": "not canonical"}}}
  }
}`

const webOSIS = `<?xml version="1.0" encoding="UTF-8"?>
<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
  <osisText osisIDWork="webbe" xml:lang="en">
    <header>
      <work osisWork="webbe"><title>World English Bible</title></work>
    </header>
    <div type="book" osisID="Gen">
      <chapter osisID="Gen.1">
        <verse osisID="Gen.1.1">In the beginning, God
          created the heavens and the earth.</verse>
        <verse osisID="Gen.1.2">The earth was formless<note>Or, empty</note> and empty.</verse>
      </chapter>
    </div>
    <div type="book" osisID="John">
      <chapter osisID="John.3">
        <verse sID="John.3.16.s" osisID="John.3.16"/>For God so <w>loved</w> the world<verse eID="John.3.16.s"/>
      </chapter>
    </div>
    <div type="book" osisID="Tob">
      <chapter osisID="Tob.1"><verse osisID="Tob.1.1">Deuterocanonical</verse></chapter>
    </div>
  </osisText>
</osis>`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path       string
		want       importer.Format
		compressed bool
	}{
		{"kjv.json", importer.FormatJSON, false},
		{"KJV.JSON", importer.FormatJSON, false},
		{"kjv.json.xz", importer.FormatJSON, true},
		{"web.xml", importer.FormatOSIS, false},
		{"dir/web.osis.xz", importer.FormatOSIS, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, c, err := importer.DetectFormat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.compressed, c)
		})
	}

	_, _, err := importer.DetectFormat("notes.txt")
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "kjv.json", []byte(kjvJSON))

	c, err := importer.Load(p, importer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "KJV", c.Abbrev)
	assert.Equal(t, "King James Version", c.Name)
	assert.Equal(t, importer.FormatJSON, c.Format)
	assert.Equal(t, importer.Checksum([]byte(kjvJSON)), c.Checksum)
	assert.Equal(t, 1, c.Skipped)
	assert.Equal(t, []store.ImportVerse{
		{Book: "Gen", Chapter: 1, Verse: 1, Text: "In the beginning God created the heaven and the earth."},
		{Book: "Gen", Chapter: 1, Verse: 2, Text: "And the earth was without form"},
		{Book: "Joh", Chapter: 3, Verse: 16, Text: "For God so loved the world"},
	}, c.Verses)
}

func TestLoadOverridesAndStem(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "kjv.json", []byte(kjvJSON))

	c, err := importer.Load(p, importer.Options{Abbrev: "akjv", Name: "Authorised"})
	require.NoError(t, err)
	assert.Equal(t, "AKJV", c.Abbrev)
	assert.Equal(t, "Authorised", c.Name)

	bare := writeFile(t, dir, "asv.json.xz", compress(t, []byte(`{"books":{"Gen":{"chapters":{"1":{"1":"In the beginning"}}}}}`)))
	c, err = importer.Load(bare, importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, "ASV", c.Abbrev)
	assert.Len(t, c.Verses, 1)
}

func TestLoadOSIS(t *testing.T) {
	p := writeFile(t, t.TempDir(), "web.xml", []byte(webOSIS))

	c, err := importer.Load(p, importer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "WEB", c.Abbrev)
	assert.Equal(t, "World English Bible", c.Name)
	assert.Equal(t, 1, c.Skipped)
	assert.Equal(t, []store.ImportVerse{
		{Book: "Gen", Chapter: 1, Verse: 1, Text: "In the beginning, God created the heavens and the earth."},
		{Book: "Gen", Chapter: 1, Verse: 2, Text: "The earth was formless and empty."},
		{Book: "Joh", Chapter: 3, Verse: 16, Text: "For God so loved the world"},
	}, c.Verses)
}

func TestLoadCompressedOSISChecksumsRawBytes(t *testing.T) {
	raw := compress(t, []byte(webOSIS))
	p := writeFile(t, t.TempDir(), "web.osis.xz", raw)

	c, err := importer.Load(p, importer.Options{})
	require.NoError(t, err)
	assert.Len(t, c.Verses, 3)
	assert.Equal(t, importer.Checksum(raw), c.Checksum)
	assert.NotEqual(t, importer.Checksum([]byte(webOSIS)), c.Checksum)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := importer.Load(writeFile(t, dir, "bad.json", []byte(`{`)), importer.Options{})
	assert.Error(t, err)

	_, err = importer.Load(writeFile(t, dir, "empty.xml", []byte(`<osis><osisText/></osis>`)), importer.Options{})
	assert.Error(t, err)

	_, err = importer.Load(writeFile(t, dir, "bad.json.xz", []byte("not xz")), importer.Options{})
	assert.Error(t, err)

	_, err = importer.Load(filepath.Join(dir, "missing.json"), importer.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportSkipsIdenticalChecksum(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	p := writeFile(t, t.TempDir(), "kjv.json", []byte(kjvJSON))

	c, err := importer.Load(p, importer.Options{})
	require.NoError(t, err)

	res, err := importer.Import(ctx, s, c, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Written)
	assert.False(t, res.Unchanged)

	res, err = importer.Import(ctx, s, c, false)
	require.NoError(t, err)
	assert.True(t, res.Unchanged)
	assert.Zero(t, res.Written)

	res, err = importer.Import(ctx, s, c, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Written)

	// Identical bytes under another abbreviation are a separate translation.
	c.Abbrev = "KJ2"
	res, err = importer.Import(ctx, s, c, false)
	require.NoError(t, err)
	assert.False(t, res.Unchanged)

	ts, err := s.Translations(ctx)
	require.NoError(t, err)
	assert.Len(t, ts, 2)
}

func TestRunImportsDirectory(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	dir := t.TempDir()
	writeFile(t, dir, "kjv.json", []byte(kjvJSON))
	writeFile(t, dir, "web.xml.xz", compress(t, []byte(webOSIS)))
	writeFile(t, dir, "README.md", []byte("skip me"))
	writeFile(t, dir, ".hidden.json", []byte("{"))

	files, err := importer.Files([]string{dir})
	require.NoError(t, err)
	require.Len(t, files, 2)

	results, err := importer.Run(ctx, s, files, importer.Options{}, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "KJV", results[0].Abbrev)
	assert.Equal(t, "WEB", results[1].Abbrev)

	rows, err := s.SearchWords(ctx, "WEB", query.Compile("loved", false))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Joh", rows[0].Book)
}
