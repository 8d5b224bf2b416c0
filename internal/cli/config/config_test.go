package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "kernel.yml", cfg.Input)
	assert.Equal(t, "inc", cfg.OutputDir)
	assert.Empty(t, cfg.Namespace)
	assert.True(t, cfg.ASTJSON)
	assert.False(t, cfg.Lint)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(oldWd)

	configContent := `
input: resources.yml
output_dir: src/generated
namespace: Acme\Plugin
ast_json: false
lint: true
log_level: debug
`
	require.NoError(t, os.WriteFile("phpgen.yml", []byte(configContent), 0644))

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "resources.yml", cfg.Input)
	assert.Equal(t, "src/generated", cfg.OutputDir)
	assert.Equal(t, `Acme\Plugin`, cfg.Namespace)
	assert.False(t, cfg.ASTJSON)
	assert.True(t, cfg.Lint)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "phpgen.yml"), []byte("output_dir: inc\n"), 0644))

	t.Setenv("PHPGEN_OUTPUT_DIR", "build/php")
	t.Setenv("PHPGEN_LINT", "true")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "build/php", cfg.OutputDir)
	assert.True(t, cfg.Lint)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "phpgen.yml"), []byte("input: [unclosed\n"), 0644))

	_, err := Load(tmpDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigRead))
}

func TestLoadIgnoresBinaryNamedPhpgen(t *testing.T) {
	tmpDir := t.TempDir()
	binary := []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00, 0x00, 0x03}
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "phpgen"), binary, 0755))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, Default().OutputDir, cfg.OutputDir)
	assert.Equal(t, Default().Input, cfg.Input)
}

func TestLoadFindsYAMLExtension(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "phpgen"), []byte{0x00, 0x01}, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "phpgen.yaml"), []byte("output_dir: build\n"), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.OutputDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "phpgen.yml"), []byte("output_dir: src\n"), 0644))
	cfg, err = Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.OutputDir)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty output", func(c *Config) { c.OutputDir = "  " }, "output_dir"},
		{"absolute output", func(c *Config) { c.OutputDir = "/var/www" }, "output_dir"},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"namespace", func(c *Config) { c.Namespace = `Acme\Plugin\V2` }, ""},
		{"bad namespace", func(c *Config) { c.Namespace = `Acme\\Plugin` }, "namespace"},
		{"leading digit", func(c *Config) { c.Namespace = "1Acme" }, "namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
