package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const webOSIS = `<?xml version="1.0" encoding="UTF-8"?>
<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
  <osisText osisIDWork="WEB">
    <header><work osisWork="WEB"><title>World English Bible</title></work></header>
    <div type="book" osisID="Gen">
      <chapter osisID="Gen.1">
        <verse osisID="Gen.1.1">In the beginning, God created the heavens and the earth.<note>Or, sky</note></verse>
      </chapter>
    </div>
  </osisText>
</osis>`

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	env.write("kjv.json", kjvFixture)

	out := env.run("import", "kjv.json")
	env.contains(out, "KJV: 6 verse(s) from")

	out = env.run("import", "kjv.json")
	env.contains(out, "KJV: unchanged")

	out = env.run("import", "kjv.json", "--force")
	env.contains(out, "KJV: 6 verse(s)")
}

func TestImport_OSISAndCompressed(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(webOSIS))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "web.xml.xz"), buf.Bytes(), 0644))

	out := env.run("import", "web.xml.xz")
	env.contains(out, "WEB: 1 verse(s)")

	out = env.run("search", "sky")
	env.contains(out, "No results")

	out = env.run("ref", "Gen 1:1")
	env.contains(out, "WEB Gen 1:1     In the beginning, God created the heavens and the earth.")
}

func TestImport_Directory(t *testing.T) {
	env := newTestEnv(t)
	env.write("bibles/kjv.json", kjvFixture)
	env.write("bibles/asv.json", asvFixture)
	env.write("bibles/readme.txt", "not a translation")

	out := env.run("import", "bibles", "-o", "json")
	var results []struct {
		Abbrev  string `json:"abbrev"`
		Written int64  `json:"written"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	out = env.run("translations")
	env.contains(out, "KJV")
	env.contains(out, "ASV")
}

func TestImport_Overrides(t *testing.T) {
	env := newTestEnv(t)
	env.write("kjv.json", kjvFixture)
	env.write("asv.json", asvFixture)

	env.run("import", "kjv.json", "--abbrev", "akjv", "--name", "Another KJV")
	out := env.run("translations")
	env.contains(out, "AKJV")
	env.contains(out, "Another KJV")

	out, err := env.runErr("import", "kjv.json", "asv.json", "--abbrev", "X")
	require.Error(t, err)
	env.contains(out, "exactly one file")
}

func TestImport_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.write("notes.txt", "hello")
	env.write("bad.json", "{not json")

	_, err := env.runErr("import", "notes.txt")
	assert.Error(t, err)
	_, err = env.runErr("import", "bad.json")
	assert.Error(t, err)
	_, err = env.runErr("import", "missing.json")
	assert.Error(t, err)
}
