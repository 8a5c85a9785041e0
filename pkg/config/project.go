// Copyright © 2018 One Concern

// Package config describes the project configuration and the cloud credentials file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oneconcern/repoassist/pkg/model"
	"go.uber.org/multierr"
)

// Project types
const (
	ProjectTypePackage = "package"
	ProjectTypeModule  = "module"
)

// Metadata file generation modes
const (
	Generated = "generated"
	Prepared  = "prepared"
)

// Default file names in the repository
const (
	ChangelogFileName = "CHANGELOG.md"
	AuthorsFileName   = "AUTHORS"
	ConfigFileName    = "repoassist"
)

// Project describes the project managed by repoassist
type Project struct {
	Name            string        `json:"project_name" yaml:"project_name" mapstructure:"project_name"`
	Type            string        `json:"project_type" yaml:"project_type" mapstructure:"project_type"`
	VersionFile     string        `json:"version_file,omitempty" yaml:"version_file,omitempty" mapstructure:"version_file"`
	ChangelogType   string        `json:"changelog_type" yaml:"changelog_type" mapstructure:"changelog_type"`
	AuthorsType     string        `json:"authors_type" yaml:"authors_type" mapstructure:"authors_type"`
	Author          string        `json:"author,omitempty" yaml:"author,omitempty" mapstructure:"author"`
	AuthorEmail     string        `json:"author_email,omitempty" yaml:"author_email,omitempty" mapstructure:"author_email"`
	DistDir         string        `json:"dist_dir" yaml:"dist_dir" mapstructure:"dist_dir"`
	ArtifactsDir    string        `json:"artifacts_dir" yaml:"artifacts_dir" mapstructure:"artifacts_dir"`
	PackagePattern  string        `json:"package_pattern" yaml:"package_pattern" mapstructure:"package_pattern"`
	BuildCommand    string        `json:"build_command" yaml:"build_command" mapstructure:"build_command"`
	InstallCommand  string        `json:"install_command" yaml:"install_command" mapstructure:"install_command"`
	VersionEnv      string        `json:"version_env" yaml:"version_env" mapstructure:"version_env"`
	CredentialsFile string        `json:"credentials_file" yaml:"credentials_file" mapstructure:"credentials_file"`
	Buckets         model.Buckets `json:"buckets" yaml:"buckets" mapstructure:"buckets"`
}

// DefaultProject yields a project configuration with all defaults set
func DefaultProject() Project {
	return Project{
		Type:            ProjectTypePackage,
		ChangelogType:   Generated,
		AuthorsType:     Generated,
		DistDir:         "dist",
		ArtifactsDir:    "release",
		PackagePattern:  ".tar",
		BuildCommand:    "python setup.py sdist bdist_wheel",
		InstallCommand:  "python setup.py install",
		VersionEnv:      "PBR_VERSION",
		CredentialsFile: CredentialsFileName,
		Buckets:         model.DefaultBuckets(),
	}
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return FieldError{Field: field, Reason: fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), value)}
}

func nonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return FieldError{Field: field, Reason: "is required"}
	}
	return nil
}

// Validate the project configuration
func (p Project) Validate() error {
	errs := multierr.Combine(
		nonEmpty("project_name", p.Name),
		oneOf("project_type", p.Type, ProjectTypePackage, ProjectTypeModule),
		oneOf("changelog_type", p.ChangelogType, Generated, Prepared),
		oneOf("authors_type", p.AuthorsType, Generated, Prepared),
		nonEmpty("dist_dir", p.DistDir),
		nonEmpty("artifacts_dir", p.ArtifactsDir),
		nonEmpty("build_command", p.BuildCommand),
	)
	seen := make(map[string]struct{}, len(p.Buckets))
	for i, b := range p.Buckets {
		field := fmt.Sprintf("buckets[%d]", i)
		if strings.TrimSpace(b.Name) == "" || strings.Contains(b.Name, "/") {
			errs = multierr.Append(errs, FieldError{Field: field, Reason: "must have a single segment name"})
			continue
		}
		if _, dup := seen[b.Name]; dup {
			errs = multierr.Append(errs, FieldError{Field: field, Reason: fmt.Sprintf("duplicates bucket %q", b.Name)})
		}
		seen[b.Name] = struct{}{}
		if len(b.Keywords) == 0 {
			errs = multierr.Append(errs, FieldError{Field: field, Reason: "must declare at least one keyword"})
		}
	}
	if errs != nil {
		return ErrProject.Wrap(errs)
	}
	return nil
}

// VersionFilePath locates the file holding the version marker, relative to root.
//
// A "package" project holds it in <name>/__init__.py, a "module" project in <name>.py.
func (p Project) VersionFilePath(root string) string {
	if p.VersionFile != "" {
		if filepath.IsAbs(p.VersionFile) {
			return p.VersionFile
		}
		return filepath.Join(root, p.VersionFile)
	}
	if p.Type == ProjectTypeModule {
		return filepath.Join(root, p.Name+".py")
	}
	return filepath.Join(root, p.Name, "__init__.py")
}

// ChangelogPath is the location of the changelog in the repository
func (p Project) ChangelogPath(root string) string {
	return filepath.Join(root, ChangelogFileName)
}

// AuthorsPath is the location of the authors file in the repository
func (p Project) AuthorsPath(root string) string {
	return filepath.Join(root, AuthorsFileName)
}

// CredentialsPath is the location of the credentials file
func (p Project) CredentialsPath(root string) string {
	if filepath.IsAbs(p.CredentialsFile) {
		return p.CredentialsFile
	}
	return filepath.Join(root, p.CredentialsFile)
}

// ReleasePackageSuffix marks release packages copied to the artifacts dir
func (p Project) ReleasePackageSuffix() string {
	return "_release"
}
