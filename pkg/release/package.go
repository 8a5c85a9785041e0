package release

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/oneconcern/repoassist/pkg/artifact"
	"github.com/oneconcern/repoassist/pkg/errors"
	"go.uber.org/zap"
)

// ReleasePackageName inserts suffix in a package file name, before its extension
func ReleasePackageName(name, suffix string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if inner := filepath.Ext(stem); inner == ".tar" {
		ext = inner + ext
		stem = strings.TrimSuffix(stem, inner)
	}
	return stem + suffix + ext
}

func (c *Coordinator) buildPackage(ctx context.Context, tag string) (string, string, error) {
	if err := c.packager.Build(ctx, tag); err != nil {
		return "", "", newError(KindPackaging, err).withTag(tag)
	}

	distDir := c.projectPath(c.project.DistDir)
	pkg, err := artifact.Latest(c.fs, distDir, artifact.Containing(c.project.PackagePattern))
	if err != nil {
		if errors.Is(err, artifact.ErrNoArtifact) {
			return "", "", newError(KindFileNotFound, err).withPath(distDir)
		}
		return "", "", newError(KindPackaging, err).withPath(distDir)
	}
	if tag != "" && !strings.Contains(filepath.Base(pkg), tag) {
		return "", "", newError(KindArtifactName, nil).withTag(tag).withPath(pkg)
	}

	releasePkg, err := c.copyToArtifacts(pkg)
	if err != nil {
		return "", "", newError(KindPackaging, err).withPath(pkg)
	}
	return pkg, releasePkg, nil
}

func (c *Coordinator) copyToArtifacts(pkg string) (string, error) {
	dir := c.projectPath(c.project.ArtifactsDir)
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, ReleasePackageName(filepath.Base(pkg), c.project.ReleasePackageSuffix()))

	src, err := c.fs.Open(pkg)
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := c.fs.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("copying to %s: %w", dest, err)
	}
	if err = dst.Close(); err != nil {
		return "", err
	}
	c.l.Info("release package ready for upload", zap.String("path", dest))
	return dest, nil
}
