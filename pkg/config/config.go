package config

import (
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

// Settings holds the scan configuration. Values come from defaults, an
// optional YAML config file and finally explicit command line flags, in that
// order of precedence.
type Settings struct {
	MinSize  int64    `koanf:"min_size"`
	MaxSize  int64    `koanf:"max_size"` // 0 = unbounded
	Symlinks bool     `koanf:"symlinks"`
	Glob     string   `koanf:"glob"`
	Filters  []string `koanf:"filters"`
	Workers  int      `koanf:"workers"` // 0 = auto (0.75 x cores)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"min_size": int64(1),
		"max_size": int64(0),
		"symlinks": false,
		"glob":     "*",
		"workers":  0,
	}
}

// Load builds Settings from defaults plus the optional YAML file at path.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "load default config")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %q", path)
		}
	}

	settings := new(Settings)
	if err := k.Unmarshal("", settings); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	return settings, nil
}
