package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// File names looked up by the loader
const (
	EnvPrefix       = "PLUGBOOT_"
	ProjectFileName = "plugboot.toml"
	UserFileName    = "config.toml"
	DotEnvFileName  = ".env"
	AppName         = "plugboot"
)

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// WorkingRoot holds plugboot.toml and .env; empty means the current directory
	WorkingRoot string
	// UserConfigPath overrides the user file location
	UserConfigPath string
	// SkipUserConfig ignores the user file entirely
	SkipUserConfig bool
	// Overrides are applied last, keyed by dotted path (install.reinstall)
	Overrides map[string]interface{}
}

// UserConfigPath returns the user configuration file location.
// It respects XDG_CONFIG_HOME if set.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, AppName, UserFileName)
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 2. User file
	if !opts.SkipUserConfig {
		userPath := opts.UserConfigPath
		if userPath == "" {
			userPath = UserConfigPath()
		}
		if err := loadFileIfExists(k, userPath); err != nil {
			return nil, err
		}
	}

	root := opts.WorkingRoot
	if root == "" {
		root = "."
	}

	// 3. Project file
	if err := loadFileIfExists(k, filepath.Join(root, ProjectFileName)); err != nil {
		return nil, err
	}

	// 4. .env, below the real environment
	dotenv, err := readDotEnv(filepath.Join(root, DotEnvFileName))
	if err != nil {
		return nil, err
	}
	if len(dotenv) > 0 {
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env values")
		}
	}

	// 5. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 6. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("root", root).Strs("keys", k.Keys()).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults alone
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}
	return unmarshal(k)
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
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// readDotEnv returns the PLUGBOOT_ values of a .env file that are not
// already present in the environment, keyed like envKey
func readDotEnv(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to read %s", path)
	}

	out := make(map[string]interface{})
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if key := envKey(name); key != "" {
			out[key] = value
		}
	}
	return out, nil
}

// envKey maps PLUGBOOT_SECTION_SOME_KEY to section.some_key
func envKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	section, key, found := strings.Cut(name, "_")
	if !found {
		return section
	}
	return section + "." + key
}
