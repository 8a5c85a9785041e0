// Copyright © 2018 One Concern

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/magiconair/properties"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// CredentialsFileName is the default name of the local credentials file
const CredentialsFileName = "cloud_credentials.txt"

// Credentials file keys
const (
	KeyServer         = "server"
	KeyUsername       = "username"
	KeyPassword       = "password"
	KeyMainBucketPath = "main_bucket_path"
	KeyClientName     = "client_name"
	KeyProjectName    = "project_name"
)

type fieldSpec struct {
	name     string
	required bool
	validate func(string) error
	set      func(*model.Credentials, string)
}

func credentialsSchema() []fieldSpec {
	return []fieldSpec{
		{name: KeyServer, required: true, set: func(c *model.Credentials, v string) { c.Server = v }},
		{name: KeyUsername, required: true, set: func(c *model.Credentials, v string) { c.Username = v }},
		{name: KeyPassword, required: true, set: func(c *model.Credentials, v string) { c.Password = v }},
		{name: KeyMainBucketPath, required: true, validate: notRootPath, set: func(c *model.Credentials, v string) { c.MainBucketPath = v }},
		{name: KeyClientName, set: func(c *model.Credentials, v string) { c.ClientName = v }},
		{name: KeyProjectName, set: func(c *model.Credentials, v string) { c.ProjectName = v }},
	}
}

func notRootPath(value string) error {
	if strings.Trim(value, "/") == "" {
		return fmt.Errorf("must not be the root path")
	}
	return nil
}

// LoadCredentials reads and validates the credentials file at path
func LoadCredentials(fs afero.Fs, path string) (model.Credentials, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return model.Credentials{}, ErrCredentials.WrapMessage(path, err)
	}
	creds, err := ParseCredentials(data)
	if err != nil {
		return model.Credentials{}, ErrCredentials.WrapMessage(path, err)
	}
	return creds, nil
}

// ParseCredentials parses key = value lines. Lines starting with # are comments.
func ParseCredentials(data []byte) (model.Credentials, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return model.Credentials{}, err
	}
	values := make(map[string]string, props.Len())
	for _, key := range props.Keys() {
		values[key], _ = props.Get(key)
	}
	return ValidateCredentials(values)
}

// ValidateCredentials checks raw credential values against the credentials schema, in one pass.
//
// All field errors are reported together.
func ValidateCredentials(values map[string]string) (model.Credentials, error) {
	var (
		creds model.Credentials
		errs  error
	)
	schema := credentialsSchema()
	known := make(map[string]struct{}, len(schema))

	for _, field := range schema {
		known[field.name] = struct{}{}
		value := strings.TrimSpace(values[field.name])
		if value == "" {
			if field.required {
				errs = multierr.Append(errs, FieldError{Field: field.name, Reason: "is required"})
			}
			continue
		}
		if field.validate != nil {
			if err := field.validate(value); err != nil {
				errs = multierr.Append(errs, FieldError{Field: field.name, Reason: err.Error()})
				continue
			}
		}
		field.set(&creds, value)
	}

	unknown := make([]string, 0)
	for key := range values {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = multierr.Append(errs, FieldError{Field: key, Reason: "is not a known credentials field"})
	}

	if errs != nil {
		return model.Credentials{}, ErrCredentials.Wrap(errs)
	}
	return creds, nil
}

const credentialsTemplate = `# Cloud credentials for repoassist.
# This file holds secrets: it must NOT be committed to version control.
# Required: server, username, password, main_bucket_path.
# Optional: client_name, project_name.
# server accepts host[:port], ftp://host[:port], ftps://host[:port], s3://bucket?region=..., gs://bucket or file:///path
server = {{ .Server }}
username = {{ .Username }}
password = {{ .Password }}
main_bucket_path = {{ .MainBucketPath }}
client_name = {{ .ClientName }}
project_name = {{ .ProjectName }}
`

// RenderCredentials renders a credentials file with the given values
func RenderCredentials(creds model.Credentials) ([]byte, error) {
	tpl, err := template.New("credentials").Parse(credentialsTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, creds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TouchCredentials creates a credentials file template at path, unless one already exists.
//
// It returns the path to the file and whether it has been created.
func TouchCredentials(fs afero.Fs, path string, creds model.Credentials) (string, bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return path, false, err
	}
	if exists {
		return path, false, nil
	}
	data, err := RenderCredentials(creds)
	if err != nil {
		return path, false, err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return path, false, err
	}
	if err := afero.WriteFile(fs, path, data, os.FileMode(0o600)); err != nil {
		return path, false, err
	}
	return path, true, nil
}
