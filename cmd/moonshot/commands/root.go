// Package commands implements the moonshot CLI.
package commands

import (
	"github.com/janetuk/moonshot/internal/config"
	"github.com/janetuk/moonshot/internal/obslog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "moonshot",
	Short: "Establish and exercise GSS-EAP security contexts",
	Long: `moonshot drives the GSS-EAP mechanism (federated EAP/RADIUS
authentication bridged into GSS-API context establishment) from the
command line, as either an initiator speaking to an acceptor, or an
acceptor fronting a RadSec/RADIUS server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		return obslog.Init(obslog.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/moonshot/moonshot.yaml)")

	rootCmd.AddCommand(initiateCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(demoCmd)
}
