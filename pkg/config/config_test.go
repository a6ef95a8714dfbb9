package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xdgReload re-reads XDG_* env vars, which adrg/xdg caches at init, and
// restores the original values when the test ends.
func xdgReload(t *testing.T) {
	t.Helper()
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdgReload(t)

	d, err := Load()
	require.NoError(t, err)

	assert.False(t, d.Overwrite)
	assert.Equal(t, "750", d.DirPerms)
	assert.Equal(t, "600", d.FilePerms)
	assert.Empty(t, d.User)
	assert.Empty(t, d.Group)
}

func TestLoadUserConfigOverrides(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdgReload(t)

	configDir := filepath.Join(configHome, "atomicwriter")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.toml"),
		[]byte("overwrite = true\nfile_perms = \"640\"\n"),
		0o644,
	))

	d, err := Load()
	require.NoError(t, err)

	assert.True(t, d.Overwrite)
	assert.Equal(t, "640", d.FilePerms)
	// Untouched keys keep embedded defaults
	assert.Equal(t, "750", d.DirPerms)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdgReload(t)
	t.Setenv("ATOMICWRITER_DIR_PERMS", "700")
	t.Setenv("ATOMICWRITER_USER", "daemon")

	d, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "700", d.DirPerms)
	assert.Equal(t, "daemon", d.User)
}

func TestOptionsConversion(t *testing.T) {
	d := &Defaults{Overwrite: true, DirPerms: "750", FilePerms: "600", Group: "staff"}

	opts, err := d.Options()
	require.NoError(t, err)

	assert.True(t, opts.Overwrite)
	assert.Equal(t, fs.FileMode(0o750), opts.DirPerms)
	assert.Equal(t, fs.FileMode(0o600), opts.FilePerms)
	assert.Equal(t, "staff", opts.Group)
}

func TestOptionsInvalidPerms(t *testing.T) {
	d := &Defaults{DirPerms: "rwx", FilePerms: "600"}

	_, err := d.Options()
	require.Error(t, err)
}

func TestParsePerms(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    fs.FileMode
		wantErr bool
	}{
		{"plain_octal", "750", 0o750, false},
		{"zero_prefixed", "0644", 0o644, false},
		{"go_octal_prefix", "0o600", 0o600, false},
		{"not_octal", "abc", 0, true},
		{"digit_out_of_range", "798", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePerms(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
