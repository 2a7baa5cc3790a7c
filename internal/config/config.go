// Package config loads the opcanon.toml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/you-not-fish/opcanon/internal/opabi"
	"github.com/you-not-fish/opcanon/internal/syntax"
)

// FileName is the name of the settings file looked up by Find.
const FileName = "opcanon.toml"

// Config holds every setting of the tool.
type Config struct {
	Pass        PassConfig        `toml:"pass"`
	Target      TargetConfig      `toml:"target"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Driver      DriverConfig      `toml:"driver"`
}

// PassConfig controls the per-function pass pipeline.
type PassConfig struct {
	Verify                bool   `toml:"verify"`
	DumpIntermediates     bool   `toml:"dump_intermediates"`
	DumpFunc              string `toml:"dump_func"`
	PromoteTensorLiterals bool   `toml:"promote_tensor_literals"`
	Cleanup               bool   `toml:"cleanup"`
}

// TargetConfig describes the compilation target.
type TargetConfig struct {
	WordSize int `toml:"word_size"`
}

// DiagnosticsConfig controls diagnostic collection.
type DiagnosticsConfig struct {
	// Max caps the diagnostics kept per function; 0 means unlimited.
	Max int `toml:"max"`

	// InternalFiles are glob patterns of library source files. Values
	// inlined from them are reported at their user call site.
	InternalFiles []string `toml:"internal_files"`
}

// DriverConfig controls module-level scheduling.
type DriverConfig struct {
	// Jobs bounds the functions processed at once; 0 means one per CPU.
	Jobs int `toml:"jobs"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Pass: PassConfig{
			Verify:                true,
			PromoteTensorLiterals: true,
			Cleanup:               true,
		},
		Target:      TargetConfig{WordSize: opabi.Word64},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
}

// Find looks for FileName in startDir and its parents.
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

// Load reads path on top of the defaults. Keys absent from the file keep
// their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	// Naming a function to dump implies dumping.
	if meta.IsDefined("pass", "dump_func") && !meta.IsDefined("pass", "dump_intermediates") {
		cfg.Pass.DumpIntermediates = cfg.Pass.DumpFunc != ""
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Target.WordSize != opabi.Word32 && c.Target.WordSize != opabi.Word64 {
		return fmt.Errorf("[target].word_size must be 32 or 64, got %d", c.Target.WordSize)
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative, got %d", c.Diagnostics.Max)
	}
	if c.Driver.Jobs < 0 {
		return fmt.Errorf("[driver].jobs must not be negative, got %d", c.Driver.Jobs)
	}
	for _, pattern := range c.Diagnostics.InternalFiles {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("[diagnostics].internal_files: bad pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// IsInternal reports whether pos lies in a file matched by
// InternalFiles. Patterns are matched against the full file name and
// against its base name.
func (d *DiagnosticsConfig) IsInternal(pos syntax.Pos) bool {
	name := pos.Filename()
	if name == "" {
		return false
	}
	base := filepath.Base(name)
	for _, pattern := range d.InternalFiles {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
