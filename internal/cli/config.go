package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polycache/polycache/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Init(configFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			data, err := json.MarshalIndent(config.Get(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.GetConfigFile()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	configCmd.AddCommand(printCmd)
	configCmd.AddCommand(pathCmd)
	return configCmd
}
