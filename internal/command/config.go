package command

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by all commands.
type Config struct {
	Precision int    `yaml:"precision"` // digits after the decimal point for einsum results
	Format    string `yaml:"format"`    // default export format
	Parallel  bool   `yaml:"parallel"`  // run independent demos concurrently
	Workers   int    `yaml:"workers"`   // worker goroutines when Parallel is set
	Tokenizer string `yaml:"tokenizer"` // tokenizer for the attention demos
	Debug     bool   `yaml:"debug"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Precision: 2,
		Format:    "json",
		Parallel:  true,
		Workers:   runtime.NumCPU(),
		Tokenizer: "word",
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	//nolint:gosec // G304: Config path comes from the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "Loading %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "Parsing %s", path)
	}
	if cfg.Precision < 0 {
		return cfg, errors.Errorf("%s: precision must not be negative, got %d", path, cfg.Precision)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
