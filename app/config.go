package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	configCmd.Flags().BoolVar(&asJSON, "json", false, "Dump the configuration as JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	asJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Dump the effective configuration",
		Long:  `Reads the configuration file, applies environment overrides and prints the result.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			var out string

			if asJSON {
				out, err = config.DumpConfigJSON(cfg)
			} else {
				out, err = config.DumpConfig(cfg)
			}

			if err != nil {
				return err
			}

			fmt.Print(out)

			return nil
		},
	}
)
