package commands

import (
	"fmt"
	"time"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap"
	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Drive the acceptor side of a GSS-EAP context against stdin/stdout token exchange",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := eap.NewProvider()

		a := cfg.Acceptor
		if a.RadiusServer == "" {
			return fmt.Errorf("acceptor.radius_server must be set in configuration")
		}

		timeout := a.RadiusTimeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}

		radiusCfg := radsec.Config{
			Server:  a.RadiusServer,
			Secret:  []byte(a.RadiusSecret),
			Timeout: timeout,
		}
		attrs := radsec.AcceptorAttrs{
			ServiceName:     a.ServiceName,
			HostName:        a.HostName,
			ServiceSpecific: a.ServiceSpecific,
			RealmName:       a.RealmName,
		}

		cred, err := provider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageAcceptOnly, nil)
		if err != nil {
			return fmt.Errorf("acquire credential: %w", err)
		}
		eap.WithRadiusServer(cred, radiusCfg, attrs)

		sc, err := provider.AcceptSecContext(gssapi.WithAcceptorCredential(cred))
		if err != nil {
			return fmt.Errorf("accept sec context: %w", err)
		}

		return runAcceptorTokenLoop(cmd, sc)
	},
}
