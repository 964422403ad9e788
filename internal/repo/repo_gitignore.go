// repo_gitignore.go keeps .concord/.gitignore in step with which corpus
// databases are local.
//
// A local database (a licensed translation, a scratch import) stays out of
// git; a shared one is committed with the project. Local entries live in
// their own block under localHeader so the rest of the file is never
// touched.

package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	gitignoreFile = ".gitignore"
	localHeader   = "# Local databases (not committed)"
)

// defaultIgnore is written by Init. WAL side files are never committed, so
// only the .db itself needs a per-database entry.
const defaultIgnore = `# concord - ignore local config and WAL side files
config.yaml
*.db-wal
*.db-shm
`

// ignoreFile is a .gitignore held as raw lines.
type ignoreFile struct {
	path  string
	lines []string
}

func loadIgnore(repoDir string) (*ignoreFile, error) {
	f := &ignoreFile{path: filepath.Join(repoDir, gitignoreFile)}
	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", gitignoreFile, err)
	}
	f.lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return f, nil
}

func (f *ignoreFile) has(entry string) bool {
	return slices.ContainsFunc(f.lines, func(l string) bool { return strings.TrimSpace(l) == entry })
}

// add appends entry to the local block, creating the block if needed.
func (f *ignoreFile) add(entry string) {
	if f.has(entry) {
		return
	}
	i := slices.Index(f.lines, localHeader)
	if i < 0 {
		if n := len(f.lines); n > 0 && f.lines[n-1] != "" {
			f.lines = append(f.lines, "")
		}
		f.lines = append(f.lines, localHeader, entry)
		return
	}
	end := i + 1
	for end < len(f.lines) && strings.TrimSpace(f.lines[end]) != "" && !strings.HasPrefix(f.lines[end], "#") {
		end++
	}
	f.lines = slices.Insert(f.lines, end, entry)
}

// remove drops entry and the local header once its block is empty.
func (f *ignoreFile) remove(entry string) {
	f.lines = slices.DeleteFunc(f.lines, func(l string) bool { return strings.TrimSpace(l) == entry })
	i := slices.Index(f.lines, localHeader)
	if i < 0 || (i+1 < len(f.lines) && strings.HasSuffix(strings.TrimSpace(f.lines[i+1]), ".db")) {
		return
	}
	f.lines = slices.Delete(f.lines, i, i+1)
	if i > 0 && i == len(f.lines) && f.lines[i-1] == "" {
		f.lines = f.lines[:i-1]
	}
}

func (f *ignoreFile) save() error {
	s := strings.Join(f.lines, "\n")
	if s != "" {
		s += "\n"
	}
	return os.WriteFile(f.path, []byte(s), 0644)
}

// writeDefaultIgnore creates the .gitignore on first init and leaves an
// existing one alone so earlier local markers survive.
func writeDefaultIgnore(repoDir string) error {
	path := filepath.Join(repoDir, gitignoreFile)
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultIgnore), 0644)
}

// repoDirOrDiscover returns dir, or the discovered .concord directory when
// dir is empty.
func repoDirOrDiscover(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return DiscoverDir()
}

// IgnoreDB marks the named database local. dir is the .concord directory;
// empty discovers it.
func IgnoreDB(name, dir string) error {
	return editIgnore(dir, func(f *ignoreFile) { f.add(DBFileName(name)) })
}

// UnignoreDB marks the named database shared.
func UnignoreDB(name, dir string) error {
	return editIgnore(dir, func(f *ignoreFile) { f.remove(DBFileName(name)) })
}

func editIgnore(dir string, edit func(*ignoreFile)) error {
	dir, err := repoDirOrDiscover(dir)
	if err != nil {
		return err
	}
	f, err := loadIgnore(dir)
	if err != nil {
		return err
	}
	edit(f)
	return f.save()
}

// IsIgnored reports whether the named database is local.
func IsIgnored(name, dir string) (bool, error) {
	dir, err := repoDirOrDiscover(dir)
	if err != nil {
		return false, err
	}
	f, err := loadIgnore(dir)
	if err != nil {
		return false, err
	}
	return f.has(DBFileName(name)), nil
}
