// Package artifact selects build artifacts on the local file system.
package artifact

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/spf13/afero"
)

// ErrNoArtifact indicates that no file qualifies in a directory
var ErrNoArtifact = errors.New("no matching artifact")

// Matcher selects files by name
type Matcher func(name string) bool

// Containing matches files which name contains a keyword
func Containing(keyword string) Matcher {
	return func(name string) bool {
		return keyword != "" && strings.Contains(name, keyword)
	}
}

// Latest finds the most recently modified regular file in dir accepted by match.
//
// Files with the same modification time are ordered by name: the lexically greatest wins.
func Latest(fs afero.Fs, dir string, match Matcher) (string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoArtifact.WrapMessage(dir, err)
		}
		return "", err
	}

	var latest os.FileInfo
	for _, fi := range infos {
		if fi.IsDir() || !match(fi.Name()) {
			continue
		}
		if latest == nil || newer(fi, latest) {
			latest = fi
		}
	}
	if latest == nil {
		return "", ErrNoArtifact.WrapMessage(dir, os.ErrNotExist)
	}
	return filepath.Join(dir, latest.Name()), nil
}

func newer(a, b os.FileInfo) bool {
	if a.ModTime().Equal(b.ModTime()) {
		return a.Name() > b.Name()
	}
	return a.ModTime().After(b.ModTime())
}

// LatestWithKeyword finds the latest file in dir whose name contains keyword
func LatestWithKeyword(fs afero.Fs, dir, keyword string) (string, error) {
	return Latest(fs, dir, Containing(keyword))
}
