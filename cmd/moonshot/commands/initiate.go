package commands

import (
	"fmt"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap"
	"github.com/spf13/cobra"
)

var initiateCmd = &cobra.Command{
	Use:   "initiate <acceptor-name>",
	Short: "Drive the initiator side of a GSS-EAP context against stdin/stdout token exchange",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := eap.NewProvider()

		acceptorName, err := provider.ImportName(args[0], gssapi.GSS_EAP_NT_NAI)
		if err != nil {
			return fmt.Errorf("import acceptor name: %w", err)
		}

		nai := cfg.Initiator.NAI
		if nai == "" {
			return fmt.Errorf("initiator.nai must be set in configuration")
		}

		cred, err := provider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageInitiateOnly, nil)
		if err != nil {
			return fmt.Errorf("acquire credential: %w", err)
		}
		eap.WithEAPPeer(cred, func() (eap.EAPPeer, error) {
			return &eap.StaticPeer{NAI: nai}, nil
		})

		sc, err := provider.InitSecContext(acceptorName, gssapi.WithInitiatorCredential(cred))
		if err != nil {
			return fmt.Errorf("init sec context: %w", err)
		}

		return runTokenLoop(cmd, sc)
	},
}
