package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/paramgen/pkg/params"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "table", cfg.Output.Format)
	assert.False(t, cfg.Output.NoColor)
	assert.False(t, cfg.ExportedOnly)
	assert.Empty(t, cfg.ContextType)
	assert.Nil(t, cfg.DescriptionMap())

	_, ok := cfg.ContextClass()
	assert.False(t, ok)
	_, ok = cfg.Resolver().ContextType()
	assert.False(t, ok)
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	configContent := `
context_type: example.com/app.ExecutionContext
abstract_types:
  - example.com/app.BaseInput
descriptions:
  - function: Container.Search
    parameter: term
    text: text to search for
output:
  format: JSON
  no_color: true
exported_only: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paramgen.yml"), []byte(configContent), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.NoColor)
	assert.True(t, cfg.ExportedOnly)
	assert.Equal(t, []string{"example.com/app.BaseInput"}, cfg.AbstractTypes)
	assert.Equal(t, map[string]string{"Container.Search.term": "text to search for"}, cfg.DescriptionMap())

	class, ok := cfg.ContextClass()
	require.True(t, ok)
	assert.Equal(t, params.Class{PkgPath: "example.com/app", Name: "ExecutionContext"}, class)

	ctx, ok := cfg.Resolver().ContextType()
	require.True(t, ok)
	assert.Equal(t, class, ctx)
}

func TestLoadExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PARAMGEN_OUTPUT_FORMAT", "yaml")
	t.Setenv("PARAMGEN_CONTEXT_TYPE", "example.com/app.Ctx")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "example.com/app.Ctx", cfg.ContextType)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paramgen.yml"), []byte("output: [unclosed"), 0644))

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Output: OutputConfig{Format: "table"}},
		},
		{
			name: "format is case insensitive",
			cfg:  Config{Output: OutputConfig{Format: "YAML"}},
		},
		{
			name:    "unknown format",
			cfg:     Config{Output: OutputConfig{Format: "xml"}},
			wantErr: "output.format must be one of table, json, yaml",
		},
		{
			name:    "unqualified context type",
			cfg:     Config{ContextType: "Context", Output: OutputConfig{Format: "table"}},
			wantErr: "context_type must be a qualified type",
		},
		{
			name:    "unqualified abstract type",
			cfg:     Config{AbstractTypes: []string{"Base"}, Output: OutputConfig{Format: "table"}},
			wantErr: "abstract_types entries must be qualified types",
		},
		{
			name: "description without parameter",
			cfg: Config{
				Descriptions: []Description{{Function: "Search", Text: "x"}},
				Output:       OutputConfig{Format: "table"},
			},
			wantErr: "descriptions[0] needs both function and parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("table"))
	assert.True(t, ValidFormat("JSON"))
	assert.False(t, ValidFormat("csv"))
	assert.False(t, ValidFormat(""))
}
