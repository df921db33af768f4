// Package golden runs table-driven tests where the "table" lives in the
// filesystem: each input file under a corpus root is one test case, and the
// expected outputs live next to it as sibling files.
//
// Setting the corpus's refresh variable to a glob regenerates the expected
// outputs for the matching cases instead of checking them, e.g.
//
//	LINEWRAP_REFRESH='**' go test ./...
package golden

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a filesystem test corpus.
type Corpus struct {
	// The corpus root, relative to the file that calls [Corpus.Run].
	Root string

	// The environment variable that requests refresh mode. Its value is a
	// glob over test case names; matching cases have their outputs
	// regenerated rather than checked.
	Refresh string

	// The extension (without the dot) of files that define a test case.
	Extension string

	// The outputs each test case produces. A missing output file means the
	// output is expected to be empty.
	Outputs []Output

	// Test executes one test case and returns one string per entry of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output describes one output of a corpus test case.
//
// For a case foo.py, an output with extension "wrapped" is stored at
// foo.py.wrapped.
type Output struct {
	Extension string
}

// Run executes every test case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	root := filepath.Join(callerDir(), c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.TrimPrefix(filepath.Ext(path), ".") == c.Extension {
			cases = append(cases, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: could not walk corpus root %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no .%s files under %q", c.Extension, root)
	}

	refresh := os.Getenv(c.Refresh)
	if refresh != "" {
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid refresh glob %q", refresh)
		}
		// A refreshed run never passes, so stale outputs cannot sneak
		// through CI.
		t.Errorf("golden: refreshing outputs because %s=%s", c.Refresh, refresh)
	}

	for _, path := range cases {
		name, _ := filepath.Rel(root, path)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: could not read input %q: %v", path, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: Test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refreshing, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if refreshing {
					c.write(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: could not read output %q: %v", path, err)
					continue
				}
				if diff := diff(string(want), results[i]); diff != "" {
					t.Errorf("golden: mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

// write stores one refreshed output, deleting the file when the output is
// empty.
func (c Corpus) write(t *testing.T, path, text string) {
	if text == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("golden: could not delete output %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o666); err != nil {
		t.Errorf("golden: could not write output %q: %v", path, err)
	}
}

func diff(want, got string) string {
	if want == got {
		return ""
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return text
}

// callerDir returns the directory of the test file that called [Corpus.Run].
func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		return "."
	}
	return filepath.Dir(file)
}
