package config

import (
	"testing"

	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const validCredentials = `# test credentials
server = ftp.example.com:2121
username = user
password = pa$${secret}word
main_bucket_path = a/b/main
client_name = acme
project_name =
`

type credentialsFixture struct {
	name      string
	values    map[string]string
	wantError []string
}

func credentialsTestCases() []credentialsFixture {
	valid := func() map[string]string {
		return map[string]string{
			KeyServer:         "host",
			KeyUsername:       "u",
			KeyPassword:       "p",
			KeyMainBucketPath: "main",
		}
	}
	with := func(key, value string) map[string]string {
		v := valid()
		v[key] = value
		return v
	}
	without := func(key string) map[string]string {
		v := valid()
		delete(v, key)
		return v
	}

	return []credentialsFixture{
		{name: "valid", values: valid()},
		{name: "valid with optional", values: with(KeyProjectName, "proj")},
		{name: "missing server", values: without(KeyServer), wantError: []string{KeyServer}},
		{name: "empty password", values: with(KeyPassword, "  "), wantError: []string{KeyPassword}},
		{name: "root main bucket", values: with(KeyMainBucketPath, "/"), wantError: []string{KeyMainBucketPath}},
		{name: "nested project", values: with(KeyProjectName, "tools/proj")},
		{name: "unknown key", values: with("passwd", "x"), wantError: []string{"passwd"}},
		{
			name:      "several errors at once",
			values:    map[string]string{KeyServer: "host"},
			wantError: []string{KeyUsername, KeyPassword, KeyMainBucketPath},
		},
	}
}

func TestValidateCredentials(t *testing.T) {
	for _, toPin := range credentialsTestCases() {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			creds, err := ValidateCredentials(testCase.values)
			if len(testCase.wantError) == 0 {
				require.NoError(t, err)
				assert.Equal(t, testCase.values[KeyServer], creds.Server)
				assert.Equal(t, testCase.values[KeyProjectName], creds.ProjectName)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCredentials)
			fieldErrs := multierr.Errors(err.(interface{ Unwrap() error }).Unwrap())
			require.Len(t, fieldErrs, len(testCase.wantError))
			for i, fe := range fieldErrs {
				var asField FieldError
				require.ErrorAs(t, fe, &asField)
				assert.Equal(t, testCase.wantError[i], asField.Field)
			}
		})
	}
}

func TestLoadCredentials(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/project/"+CredentialsFileName, []byte(validCredentials), 0600))

	creds, err := LoadCredentials(fs, "/project/"+CredentialsFileName)
	require.NoError(t, err)
	assert.Equal(t, model.Credentials{
		Server:         "ftp.example.com:2121",
		Username:       "user",
		Password:       "pa$${secret}word",
		MainBucketPath: "a/b/main",
		ClientName:     "acme",
	}, creds)

	_, err = LoadCredentials(fs, "/project/missing.txt")
	assert.ErrorIs(t, err, ErrCredentials)
}

func TestTouchCredentials(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, created, err := TouchCredentials(fs, "/project/"+CredentialsFileName, model.Credentials{MainBucketPath: "main"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "/project/"+CredentialsFileName, path)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "must NOT be committed")
	assert.Contains(t, string(content), "main_bucket_path = main")

	// a fresh template misses required secrets
	_, err = LoadCredentials(fs, path)
	assert.ErrorIs(t, err, ErrCredentials)

	// never overwrites
	require.NoError(t, afero.WriteFile(fs, path, []byte(validCredentials), 0600))
	_, created, err = TouchCredentials(fs, path, model.Credentials{})
	require.NoError(t, err)
	assert.False(t, created)
	_, err = LoadCredentials(fs, path)
	require.NoError(t, err)
}
