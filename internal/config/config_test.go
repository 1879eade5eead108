package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/tenantload/internal/files/filesystem"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeManifest(t, `endpoint: http://localhost:9130
timeout: 10m
concurrency: 4
headers:
  X-Okapi-Tenant: diku
rules:
  - key: loadReference
    lead: ref-data
    path: groups
    uri: groups
    strategy: content
    id_property: code
    accept_status: [422]
    substitute:
      "${tenant}": diku
  - key: loadSample
    lead: sample-data
    uri: users
    strategy: basename
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:9130", cfg.Endpoint)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "diku", cfg.Headers["X-Okapi-Tenant"])
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, "loadReference", cfg.Rules[0].Key)
	assert.Equal(t, "code", cfg.Rules[0].IDProperty)
	assert.Equal(t, []int{422}, cfg.Rules[0].AcceptStatus)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, timeout)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.True(t, errors.Is(err, tenantload.ErrManifestNotFound))
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeManifest(t, "{{invalid")

	cfg, err := Load(dir)
	assert.ErrorIs(t, err, tenantload.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoadFrom_MemoryBundle(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile(ConfigFileName, "rules:\n  - key: loadReference\n    lead: ref-data\n    uri: groups\n")

	cfg, err := LoadFrom(mfs)
	require.NoError(t, err)
	assert.Len(t, cfg.Rules, 1)

	_, err = LoadFrom(filesystem.NewMemoryFileSystem())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no rules", "endpoint: http://x\n", "rules: is required"},
		{"empty rules", "rules: []\n", "rules:"},
		{"missing key", "rules:\n  - uri: groups\n", "rules[0].key: is required"},
		{"missing uri", "rules:\n  - key: k\n", "rules[0].uri: is required"},
		{"bad strategy", "rules:\n  - key: k\n    uri: u\n    strategy: guess\n", `rules[0].strategy: "guess" must be one of`},
		{"bad status", "rules:\n  - key: k\n    uri: u\n    accept_status: [99]\n", "rules[0].accept_status[0]: must be at least 100"},
		{"bad endpoint", "endpoint: not a url\nrules:\n  - key: k\n    uri: u\n", "endpoint:"},
		{"negative concurrency", "concurrency: -1\nrules:\n  - key: k\n    uri: u\n", "concurrency: must be at least 0"},
		{"bad timeout", "timeout: soon\nrules:\n  - key: k\n    uri: u\n", `timeout: invalid duration "soon"`},
		{"zero timeout", "timeout: 0s\nrules:\n  - key: k\n    uri: u\n", "timeout: must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tenantload.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	_, err := Parse([]byte("timeout: soon\nrules:\n  - strategy: guess\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules[0].key")
	assert.Contains(t, err.Error(), "rules[0].uri")
	assert.Contains(t, err.Error(), "rules[0].strategy")
	assert.Contains(t, err.Error(), "timeout")
}

func TestTimeoutDuration_Default(t *testing.T) {
	d, err := (&Manifest{}).TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, tenantload.DefaultTimeout, d)
}

func TestLoadRules(t *testing.T) {
	cfg, err := Parse([]byte(`rules:
  - key: loadReference
    lead: ref-data
    uri: groups
  - key: loadReference
    lead: ref-data
    path: perms
    uri: perms/users/%d/permissions
    strategy: filename
  - key: loadSample
    lead: sample-data
    uri: configurations/entries
    path: configs
    strategy: raw-post
    accept_status: [422, 409]
`))
	require.NoError(t, err)

	rules, err := cfg.LoadRules()
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, "ref-data/groups", rules[0].SourceDir())
	assert.Equal(t, tenantload.StrategyContent, rules[0].Strategy)
	assert.Equal(t, "id", rules[0].IDField())

	assert.Equal(t, "ref-data/perms", rules[1].SourceDir())
	assert.Equal(t, "perms/users/%d/permissions", rules[1].URIPath)
	assert.Equal(t, tenantload.StrategyBasename, rules[1].Strategy)

	assert.Equal(t, tenantload.StrategyRawPost, rules[2].Strategy)
	assert.Equal(t, []int{422, 409}, rules[2].AcceptStatus)
	assert.Nil(t, rules[2].Filter)
}

func TestLoadRules_LeadingSlashRejected(t *testing.T) {
	cfg, err := Parse([]byte("rules:\n  - key: k\n    lead: d\n    uri: /groups\n"))
	require.NoError(t, err)

	_, err = cfg.LoadRules()
	assert.ErrorIs(t, err, tenantload.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "rules[0]")
}

func TestLoadRules_Substitute(t *testing.T) {
	cfg, err := Parse([]byte(`rules:
  - key: loadReference
    lead: ref-data
    uri: configs
    substitute:
      "${tenant}": diku
      "${tenantId}": t-42
`))
	require.NoError(t, err)

	rules, err := cfg.LoadRules()
	require.NoError(t, err)
	require.NotNil(t, rules[0].Filter)
	assert.Equal(t, `{"t":"diku","id":"t-42"}`, rules[0].Filter(`{"t":"${tenant}","id":"${tenantId}"}`))
}
