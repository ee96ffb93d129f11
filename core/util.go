package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// CleanString trims the leading and trailing whitespace of s, lowering it when asked to.
func CleanString(s string, lower ...bool) string {
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return strings.TrimSpace(s)
}

// ProjectRoot returns the closest directory holding a go.mod, starting from the working directory.
// Tests run from their package directory, so config files are looked up from there.
// Outside a source tree (deployed binary), the working directory itself is returned.
func ProjectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	if root, ok := findRoot(wd); ok {
		return root
	}
	return wd
}

func findRoot(dir string) (string, bool) {
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
