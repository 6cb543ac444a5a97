package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/i3tracker/i3tracker/internal/config"
)

var (
	configFile string
	verbose    bool

	// cfg holds the effective configuration, populated in PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "i3tracker",
	Short:        "Record which i3 window has focus, and for how long, into rotating CSV logs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if configFile != "" {
			v.SetConfigFile(configFile)
		}

		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Tracker.Verbose = true
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/i3tracker/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every window event")
}
