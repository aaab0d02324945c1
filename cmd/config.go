package cmd

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints every setting after defaults, .mcu.yaml, MCU_* environment variables,
and flags have been applied, followed by the config file in use (if any).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Load validates the settings and registers defaults with viper.
		if _, err := config.Load(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		out := cmd.OutOrStdout()
		if err := toml.NewEncoder(out).Encode(viper.AllSettings()); err != nil {
			return fmt.Errorf("config: encode: %w", err)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Fprintf(out, "# from %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
