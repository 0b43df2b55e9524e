package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the project file.
const FileName = "unionsynth.toml"

// Config is a loaded project file.
type Config struct {
	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
	// Root is the directory relative paths are resolved against.
	Root     string   `toml:"-"`
	Generate Generate `toml:"generate"`
}

// Generate holds the [generate] table.
type Generate struct {
	Patterns []string `toml:"patterns"`
	YAML     []string `toml:"yaml"`
	Suffix   string   `toml:"suffix"`
	Jobs     int      `toml:"jobs"`
	GOARCH   string   `toml:"goarch"`
	Header   string   `toml:"header"`
	Comments *bool    `toml:"comments"`
	Runtime  string   `toml:"runtime"`
}

// Default returns the configuration used when no project file exists.
func Default(root string) *Config {
	return &Config{
		Root: root,
		Generate: Generate{
			Patterns: []string{"./..."},
		},
	}
}

// Find walks up from startDir looking for the project file.
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

// Discover finds and loads the project file above startDir. Without one it
// returns the defaults rooted at startDir.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}

	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start directory: %w", err)
		}

		return Default(root), nil
	}

	return Load(path)
}

// Load reads the project file at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	cfg := &Config{Path: abs, Root: filepath.Dir(abs)}

	meta, err := toml.DecodeFile(abs, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(cfg.Generate.Patterns) == 0 && len(cfg.Generate.YAML) == 0 {
		cfg.Generate.Patterns = Default(cfg.Root).Generate.Patterns
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	g := c.Generate

	if g.Jobs < 0 {
		return fmt.Errorf("[generate].jobs must not be negative, got %d", g.Jobs)
	}

	if g.Suffix != "" && !strings.HasSuffix(g.Suffix, ".go") {
		return fmt.Errorf("[generate].suffix must end in .go, got %q", g.Suffix)
	}

	if g.Suffix != "" && strings.HasSuffix(g.Suffix, "_test.go") {
		return fmt.Errorf("[generate].suffix must not name a test file, got %q", g.Suffix)
	}

	return nil
}

// YAMLPaths returns the declaration files resolved against Root.
func (c *Config) YAMLPaths() []string {
	out := make([]string, len(c.Generate.YAML))

	for i, p := range c.Generate.YAML {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(c.Root, filepath.FromSlash(p))
		}
	}

	return out
}

// CommentsEnabled reports whether doc comments are generated. Default true.
func (c *Config) CommentsEnabled() bool {
	return c.Generate.Comments == nil || *c.Generate.Comments
}
