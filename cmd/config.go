package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/witanlabs/gridmap/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved defaults",
	Long: `Show or change the defaults used when a flag is omitted.

Keys:
  sheet      Worksheet index, 0-based (default 0)
  start_row  First data row, 1-based (default 2)
  output     Diff result file (default result.txt)
  log_level  debug, info, warn or error (default warn)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		out := cmd.OutOrStdout()
		p, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# %s\n", p)
		for _, key := range config.Keys {
			v, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", key, v)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		updated := cfg
		if err := updated.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(updated); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		cfg = updated
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", args[0], args[1])
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the config file and go back to built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if err := config.Delete(); err != nil {
			return fmt.Errorf("removing config: %w", err)
		}
		cfg = config.Default()
		fmt.Fprintln(cmd.OutOrStdout(), "Config reset to defaults.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
