// The cmd/ package holds CLI integration tests that exercise the full stack:
// command parsing -> extension -> engine -> store -> SQLite. Each test
// builds the binary once and runs it in a temporary project with HOME
// pointed at a temporary directory, so the audit log and global config
// never touch the real user profile.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the concord binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "concord-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "concord"
		if os.PathSeparator == '\\' {
			binaryName = "concord.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates a temporary project without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates a temporary project with an initialised corpus.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

// newCorpusEnv creates an initialised corpus with KJV and ASV imported.
func newCorpusEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.write("kjv.json", kjvFixture)
	env.write("asv.json", asvFixture)
	env.run("import", "kjv.json")
	env.run("import", "asv.json")
	return env
}

// run executes concord with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("concord %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes concord and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdinErr executes concord with stdin input.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "CONCORD_DB=", "CONCORD_DIR=")
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// write creates a file in the project directory.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// read returns the content of a file in the project directory.
func (e *testEnv) read(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	require.NoError(e.t, err)
	return string(data)
}

func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}

const kjvFixture = `{
  "translation_info": {"abbrev": "KJV", "name": "King James Version"},
  "books": {
    "Gen": {"name": "Genesis", "chapters": {"1": {
      "1": "In the beginning God created the heaven and the earth.",
      "2": "And the earth was without form, and void; and darkness was upon the face of the deep.",
      "3": "And God said, Let there be light: and there was light.",
      "4": "And God saw the light, that it was good: and God divided the light from the darkness."
    }}},
    "Joh": {"name": "John", "chapters": {"3": {
      "16": "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life."
    }}},
    "1Co": {"name": "1 Corinthians", "chapters": {"13": {
      "13": "And now abideth faith, hope, charity, these three; but the greatest of these is charity."
    }}}
  }
}`

const asvFixture = `{
  "translation_info": {"abbrev": "ASV", "name": "American Standard Version"},
  "books": {
    "Gen": {"name": "Genesis", "chapters": {"1": {
      "1": "In the beginning God created the heavens and the earth.",
      "2": "And the earth was waste and void; and darkness was upon the face of the deep."
    }}},
    "1Co": {"name": "1 Corinthians", "chapters": {"13": {
      "13": "But now abideth faith, hope, love, these three; and the greatest of these is love."
    }}}
  }
}`
