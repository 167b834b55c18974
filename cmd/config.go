package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/config"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or generate configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Generate(*cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print or write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Generate(config.Default())
		if err != nil {
			return err
		}
		if configOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if _, err := os.Stat(configOutput); err == nil {
			return fmt.Errorf("%s already exists", configOutput)
		}
		if err := os.WriteFile(configOutput, data, 0o600); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		success(cmd.OutOrStdout(), "Configuration written to %s", configOutput)
		return nil
	},
}

func init() {
	configGenerateCmd.Flags().StringVarP(&configOutput, "output", "o", "", "File to write (default stdout)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGenerateCmd)
}
