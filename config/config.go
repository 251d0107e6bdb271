// Package config wires the option registry into viper.
package config

import (
	"errors"
	"strings"

	"github.com/echo360-dl/echo360/constant"
	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer turns a dotted key into the tail of its env variable.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, env overrides and the optional TOML file, in rising priority.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for k, f := range Default {
		viper.SetDefault(k, f.Value)
		if err := viper.BindEnv(k); err != nil {
			return err
		}
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}
