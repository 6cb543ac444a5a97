package main

import (
	"github.com/spf13/cobra"
)

var configPlain bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPlain {
			cmd.Println(cfg.String())
			return nil
		}
		data, err := cfg.TOML()
		if err != nil {
			return err
		}
		cmd.Print(string(data))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("i3tracker %s\n", version)
	},
}

func init() {
	configCmd.Flags().BoolVar(&configPlain, "plain", false, "print a readable summary instead of TOML")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
