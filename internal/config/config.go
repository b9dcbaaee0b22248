// Package config loads numera.toml, the per-directory defaults file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"numera/internal/bignum"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = "numera.toml"

// ErrExists is returned by WriteDefault when a configuration file is already present.
var ErrExists = errors.New("numera.toml already exists")

// Config is the decoded form of numera.toml.
type Config struct {
	Radix RadixConfig `toml:"radix"`
	Batch BatchConfig `toml:"batch"`
	Cache CacheConfig `toml:"cache"`
}

// RadixConfig sets the default input and output radix of convert and calc.
type RadixConfig struct {
	Input  int `toml:"input"`
	Output int `toml:"output"`
}

// BatchConfig controls batch evaluation.
type BatchConfig struct {
	Jobs int `toml:"jobs"` // 0 means GOMAXPROCS
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // empty means $XDG_CACHE_HOME/numera
}

// Default returns the configuration used when no numera.toml is found.
func Default() Config {
	return Config{
		Radix: RadixConfig{Input: 10, Output: 10},
		Cache: CacheConfig{Enabled: true},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Radix.Input < bignum.MinRadix || c.Radix.Input > bignum.MaxRadix {
		return fmt.Errorf("[radix].input: %w %d", bignum.ErrInvalidRadix, c.Radix.Input)
	}
	if c.Radix.Output < bignum.MinRadix || c.Radix.Output > bignum.MaxRadix {
		return fmt.Errorf("[radix].output: %w %d", bignum.ErrInvalidRadix, c.Radix.Output)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch].jobs must be >= 0, got %d", c.Batch.Jobs)
	}
	return nil
}

// Find walks up from startDir looking for numera.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes numera.toml starting at startDir.
// It returns Default and an empty path when there is none.
func Load(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadFile decodes path over Default, so omitted keys keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

const defaultFile = `# numera configuration

[radix]
input = 10
output = 10

[batch]
jobs = 0          # 0 = GOMAXPROCS

[cache]
enabled = true
dir = ""          # "" = $XDG_CACHE_HOME/numera
`

// WriteDefault creates dir/numera.toml with the default settings.
// It never overwrites an existing file.
func WriteDefault(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrExists)
		}
		return "", err
	}
	if _, err := f.WriteString(defaultFile); err != nil {
		_ = f.Close() //nolint:errcheck
		return "", err
	}
	return path, f.Close()
}
