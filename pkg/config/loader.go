package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "LOCFOLD_"

// ConfigFileNames are looked up, in order, in the working directory.
var ConfigFileNames = []string{".locfold.toml", "locfold.toml"}

// sections are the top level tables; env keys starting with one of them are
// split after the section name (LOCFOLD_LOCALE_REGION_PATTERN ->
// locale.region_pattern).
var sections = []string{"locale", "merge", "normalize", "output"}

// LoadOptions selects the configuration layers.
type LoadOptions struct {
	// Dir is searched for ConfigFileNames. Empty means the working directory.
	Dir string
	// File is an explicit configuration file, which must exist.
	File string
	// Overrides are dotted keys applied last, usually from flags.
	Overrides map[string]interface{}
	// SkipEnv ignores LOCFOLD_* variables.
	SkipEnv bool
}

// Load builds the configuration from every layer and validates it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project config in the working directory
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		sources = append(sources, path)
		break
	}

	// 3. Explicit config file
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read config file").
				WithDetail("path", opts.File)
		}
		if err := loadFile(k, opts.File); err != nil {
			return nil, err
		}
		sources = append(sources, opts.File)
	}

	// 4. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Str("config", cfg.String()).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load(LoadOptions{Dir: os.DevNull, SkipEnv: true})
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKey maps LOCFOLD_NORMALIZE_VALIDATE_XML to normalize.validate_xml.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}
