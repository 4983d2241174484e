package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFileName = ".almanac"
	configFileType = "yaml"
	envPrefix      = "ALMANAC"

	cfgKeyFormat   = "format"
	cfgKeyLang     = "lang"
	cfgKeyTimezone = "timezone"
	cfgKeyVerbose  = "verbose"
	cfgKeyDB       = "db"
)

// loadConfig layers defaults, .almanac.yaml (or the explicit file) and
// ALMANAC_* environment variables, in increasing priority. A .env file in
// the working directory is loaded into the environment first; variables
// that are already set win over it.
//
// A missing default config file is not an error. A missing explicit one is.
func loadConfig(explicit string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyFormat, "text")
	v.SetDefault(cfgKeyLang, "en")
	v.SetDefault(cfgKeyTimezone, "UTC")
	v.SetDefault(cfgKeyVerbose, false)
	v.SetDefault(cfgKeyDB, "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
