package commands

import (
	"context"
	"crypto/rand"
	"fmt"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a full initiator/acceptor handshake in-process against a fake RADIUS server",
	Long: `demo exercises the complete GSS-EAP state machine without any live
EAP supplicant or RadSec deployment: it pairs a StaticPeer initiator with
an acceptor whose RadiusClient is a local fake that immediately returns
Access-Accept carrying the matching MS-MPPE-Send-Key, so both sides derive
the same session key and establishment completes after one exchange.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		emsk := make([]byte, keys.EAPEMSKLen)
		if _, err := rand.Read(emsk); err != nil {
			return fmt.Errorf("generate emsk: %w", err)
		}
		msk := emsk[keys.EAPEMSKLen/2:]

		initProvider := eap.NewProvider()
		acceptorName, err := initProvider.ImportName("acceptor@example.org", gssapi.GSS_EAP_NT_NAI)
		if err != nil {
			return fmt.Errorf("import acceptor name: %w", err)
		}

		initCred, err := initProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageInitiateOnly, nil)
		if err != nil {
			return fmt.Errorf("acquire initiator credential: %w", err)
		}
		eap.WithEAPPeer(initCred, func() (eap.EAPPeer, error) {
			return &eap.StaticPeer{NAI: "user@example.org", Emsk: emsk}, nil
		})

		initiator, err := initProvider.InitSecContext(acceptorName, gssapi.WithInitiatorCredential(initCred))
		if err != nil {
			return fmt.Errorf("init sec context: %w", err)
		}

		acceptProvider := eap.NewProvider()
		acceptCred, err := acceptProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageAcceptOnly, nil)
		if err != nil {
			return fmt.Errorf("acquire acceptor credential: %w", err)
		}
		eap.WithRadiusClient(acceptCred, &fakeRadiusClient{msk: msk})

		acceptor, err := acceptProvider.AcceptSecContext(gssapi.WithAcceptorCredential(acceptCred))
		if err != nil {
			return fmt.Errorf("accept sec context: %w", err)
		}

		out := cmd.OutOrStdout()

		var tok []byte
		for round := 0; ; round++ {
			tok, err = initiator.Continue(tok)
			if err != nil {
				return fmt.Errorf("initiator continue (round %d): %w", round, err)
			}
			fmt.Fprintf(out, "round %d: initiator -> acceptor (%d bytes)\n", round, len(tok))

			if len(tok) == 0 && !initiator.ContinueNeeded() {
				break
			}

			tok, err = acceptor.Continue(tok)
			if err != nil {
				return fmt.Errorf("acceptor continue (round %d): %w", round, err)
			}
			fmt.Fprintf(out, "round %d: acceptor -> initiator (%d bytes)\n", round, len(tok))

			if !initiator.ContinueNeeded() && !acceptor.ContinueNeeded() {
				break
			}
		}

		initInfo, err := initiator.Inquire()
		if err != nil {
			return fmt.Errorf("inquire initiator: %w", err)
		}
		acceptInfo, err := acceptor.Inquire()
		if err != nil {
			return fmt.Errorf("inquire acceptor: %w", err)
		}
		fmt.Fprintf(out, "established: initiator fully_established=%v, acceptor fully_established=%v\n",
			initInfo.FullyEstablished, acceptInfo.FullyEstablished)

		return nil
	},
}

// fakeRadiusClient stands in for a live RadSec/RADIUS server: it accepts
// the first EAP response unconditionally and hands back msk as the
// MS-MPPE-Send-Key, so the acceptor derives the same session key the
// initiator derived from its EMSK.
type fakeRadiusClient struct {
	msk []byte
}

func (f *fakeRadiusClient) Exchange(_ context.Context, _ string, eapMsg []byte, _ []byte) (*radsec.Result, error) {
	return &radsec.Result{
		Code: radsec.CodeAccessAccept,
		// A real Access-Accept carries the method's final EAP-Success
		// packet as its EAP-Message attribute, which the acceptor relays
		// to the initiator so its peer can reach a terminal state; the
		// exact bytes don't matter to StaticPeer, only their presence.
		EAPMessage:    []byte{0x03, 0x00, 0x00, 0x04},
		MSMPPESendKey: f.msk,
	}, nil
}
