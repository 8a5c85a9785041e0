package artifact

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, name string, modTime time.Time) {
	require.NoError(t, afero.WriteFile(fs, name, []byte(name), 0o644))
	require.NoError(t, fs.Chtimes(name, modTime, modTime))
}

func TestLatest(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/dist"
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	writeFile(t, fs, filepath.Join(dir, "pkg-0.1.0.tar.gz"), t0)
	writeFile(t, fs, filepath.Join(dir, "pkg-0.2.0.tar.gz"), t0.Add(time.Hour))
	writeFile(t, fs, filepath.Join(dir, "pkg-0.2.0-py3-none-any.whl"), t0.Add(2*time.Hour))
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "newer.tar.d"), 0o755))

	latest, err := LatestWithKeyword(fs, dir, ".tar")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg-0.2.0.tar.gz"), latest)

	latest, err = Latest(fs, dir, func(string) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg-0.2.0-py3-none-any.whl"), latest)

	_, err = LatestWithKeyword(fs, dir, "_release")
	assert.ErrorIs(t, err, ErrNoArtifact)

	_, err = LatestWithKeyword(fs, dir, "")
	assert.ErrorIs(t, err, ErrNoArtifact, "an empty keyword matches nothing")

	_, err = LatestWithKeyword(fs, "/missing", ".tar")
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestLatestTieBreak(t *testing.T) {
	fs := afero.NewMemMapFs()
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	writeFile(t, fs, "/release/b_release.txt", t0)
	writeFile(t, fs, "/release/a_release.txt", t0)
	writeFile(t, fs, "/release/c_release.txt", t0)

	for i := 0; i < 3; i++ {
		latest, err := LatestWithKeyword(fs, "/release", "_release")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/release", "c_release.txt"), latest)
	}
}
