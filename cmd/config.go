package cmd

import (
	"fmt"

	"github.com/fulmenhq/ruletune/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds config keys to the named flags of fs. Flags the user did
// not set leave the config value alone.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q for config key %s", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// loadConfig resolves the effective configuration for cmd: defaults, config
// file, RULETUNE_ environment and the flags listed in keys.
func loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	v := config.NewViper()
	if err := bindFlags(v, cmd.Flags(), keys); err != nil {
		return nil, err
	}
	explicit, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, explicit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	return cfg, nil
}
