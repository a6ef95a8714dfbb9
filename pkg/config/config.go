// Package config loads CLI defaults for atomicwriter.
//
// Configuration is layered: embedded defaults, then the user config at
// $XDG_CONFIG_HOME/atomicwriter/config.toml if present, then ATOMICWRITER_*
// environment variables. The core writer package never reads configuration;
// only the CLI consumes this package.
package config

import (
	_ "embed"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
	"github.com/arthur-debert/atomicwriter/pkg/writer"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

const envPrefix = "ATOMICWRITER_"

// Defaults holds the configurable writer defaults. Permission values are
// octal strings so config files read like chmod invocations.
type Defaults struct {
	Overwrite bool   `koanf:"overwrite"`
	DirPerms  string `koanf:"dir_perms"`
	FilePerms string `koanf:"file_perms"`
	User      string `koanf:"user"`
	Group     string `koanf:"group"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrConfigLoad, "not implemented")
}

// UserConfigPath returns the location of the optional user config file.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "atomicwriter", "config.toml")
}

// Load builds the layered configuration: embedded defaults, user config
// file, environment overrides.
func Load() (*Defaults, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if path := UserConfigPath(); fileExists(path) {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var d Defaults
	if err := k.Unmarshal("", &d); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &d, nil
}

// Options converts the loaded defaults into writer options.
func (d *Defaults) Options() (writer.Options, error) {
	opts := writer.Options{
		Overwrite: d.Overwrite,
		User:      d.User,
		Group:     d.Group,
	}

	dirPerms, err := ParsePerms(d.DirPerms)
	if err != nil {
		return opts, errors.Wrapf(err, errors.ErrConfigLoad, "invalid dir_perms %q", d.DirPerms)
	}
	opts.DirPerms = dirPerms

	filePerms, err := ParsePerms(d.FilePerms)
	if err != nil {
		return opts, errors.Wrapf(err, errors.ErrConfigLoad, "invalid file_perms %q", d.FilePerms)
	}
	opts.FilePerms = filePerms

	return opts, nil
}

// ParsePerms parses an octal permission string like "750" or "0644".
func ParsePerms(s string) (fs.FileMode, error) {
	bits, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil {
		return 0, err
	}
	return fs.FileMode(bits), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
