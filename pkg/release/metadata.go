package release

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/oneconcern/repoassist/pkg/config"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var versionMarker = regexp.MustCompile(`__version__ *= *['|"]\S+`)

const changelogHeader = "# Changelog\n\n"

var authorsTemplate = template.Must(template.New("authors").Parse(`# Authors

{{ if .Author }}{{ .Author }}{{ if .AuthorEmail }} <{{ .AuthorEmail }}>{{ end }}{{ else }}{{ .Name }} maintainers{{ end }}
`))

func (c *Coordinator) updateMetadataFiles(tag, message string) ([]string, error) {
	version, err := c.updateVersion(tag)
	if err != nil {
		return nil, err
	}
	changelog, err := c.updateChangelog(tag, message)
	if err != nil {
		return nil, err
	}
	authors, err := c.updateAuthors()
	if err != nil {
		return nil, err
	}
	return []string{version, changelog, authors}, nil
}

func (c *Coordinator) writeFile(path string, content []byte) error {
	perm := os.FileMode(0644)
	if fi, err := c.fs.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	return afero.WriteFile(c.fs, path, content, perm)
}

// ReplaceVersion replaces the first version marker in content
func ReplaceVersion(content []byte, tag string) ([]byte, bool) {
	loc := versionMarker.FindIndex(content)
	if loc == nil {
		return content, false
	}
	var b bytes.Buffer
	b.Write(content[:loc[0]])
	fmt.Fprintf(&b, "__version__ = '%s'", tag)
	b.Write(content[loc[1]:])
	return b.Bytes(), true
}

func (c *Coordinator) updateVersion(tag string) (string, error) {
	path := c.project.VersionFilePath(c.root)
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", newError(KindFileNotFound, err).withPath(path)
		}
		return "", newError(KindMetadata, err).withPath(path)
	}
	updated, found := ReplaceVersion(content, tag)
	if !found {
		return "", newError(KindVersionNotFound, nil).withPath(path)
	}
	if err = c.writeFile(path, updated); err != nil {
		return "", newError(KindMetadata, err).withPath(path)
	}
	c.l.Info("version updated", zap.String("path", path), zap.String("tag", tag))
	return path, nil
}

func (c *Coordinator) updateChangelog(tag, message string) (string, error) {
	path := c.project.ChangelogPath(c.root)
	if c.project.ChangelogType == config.Prepared {
		if _, err := c.fs.Stat(path); err != nil {
			return "", newError(KindChangelog, err).withPath(path)
		}
		return path, nil
	}

	history, err := c.backend.TagHistory()
	if err != nil {
		return "", newError(KindChangelog, err).withPath(path)
	}

	var b strings.Builder
	b.WriteString(changelogHeader)
	record := model.ReleaseRecord{Tag: model.MustParseReleaseTag(tag), Message: message, Date: c.now()}
	b.WriteString(record.Entry())
	for _, t := range history {
		b.WriteString(model.ChangelogTitle(t.Name, t.Date))
		b.WriteString("\n")
		b.WriteString(t.Message)
		b.WriteString("\n\n")
	}

	if err = c.writeFile(path, []byte(b.String())); err != nil {
		return "", newError(KindChangelog, err).withPath(path)
	}
	c.l.Info("changelog updated", zap.String("path", path))
	return path, nil
}

func (c *Coordinator) updateAuthors() (string, error) {
	path := c.project.AuthorsPath(c.root)
	if c.project.AuthorsType == config.Prepared {
		if _, err := c.fs.Stat(path); err == nil {
			return path, nil
		}
		var b bytes.Buffer
		if err := authorsTemplate.Execute(&b, c.project); err != nil {
			return "", newError(KindAuthors, err).withPath(path)
		}
		if err := c.writeFile(path, b.Bytes()); err != nil {
			return "", newError(KindAuthors, err).withPath(path)
		}
		c.l.Info("authors file generated", zap.String("path", path))
		return path, nil
	}

	authors, err := c.backend.Authors()
	if err != nil {
		return "", newError(KindAuthors, err).withPath(path)
	}
	if len(authors) == 0 {
		return "", newError(KindAuthors, fmt.Errorf("no commit author found")).withPath(path)
	}
	if err = c.writeFile(path, []byte(strings.Join(authors, "\n")+"\n")); err != nil {
		return "", newError(KindAuthors, err).withPath(path)
	}
	c.l.Info("authors file generated", zap.String("path", path))
	return path, nil
}
