package eap

import (
	"context"

	gssapi "github.com/janetuk/moonshot"
)

// EAPPeer abstracts the initiator-side EAP method engine (wpa_supplicant's
// eapol_sm in the original). A real deployment plugs in a method stack
// (EAP-TTLS, EAP-PEAP, ...); this package only needs to drive it forward
// one EAP-Request/EAP-Response exchange at a time and learn, on success,
// the EMSK used to derive the GSS-EAP session key.
type EAPPeer interface {
	// Step feeds the most recent EAP-Request received from the acceptor
	// (nil on the very first call) and returns the EAP-Response to send
	// back. done is true once the method has reached a terminal state;
	// success reports the outcome in that case and is meaningless
	// otherwise.
	Step(ctx context.Context, req []byte) (resp []byte, done bool, success bool, err error)

	// EMSK returns the Extended Master Session Key (RFC 5295) derived by
	// the method. It is only valid after Step has reported done && success,
	// and must be at least keys.EAPEMSKLen bytes.
	EMSK() ([]byte, error)

	// Identity returns the peer's Network Access Identifier, if the method
	// has established one (e.g. from the outer EAP identity exchange).
	Identity() string
}

// StaticPeer is a minimal EAPPeer that completes after a single round trip
// using a pre-provisioned EMSK, standing in for a real method stack
// (EAP-TTLS, EAP-PEAP, ...) which is out of scope for this module -- the
// actual EAP method negotiation is delegated to an external supplicant in
// the original mech_eap too, via its eapol_sm callback table.
type StaticPeer struct {
	NAI  string
	Emsk []byte

	stepped bool
}

func (p *StaticPeer) Step(_ context.Context, _ []byte) (resp []byte, done bool, success bool, err error) {
	if p.stepped {
		return nil, true, true, nil
	}
	p.stepped = true
	return []byte(p.NAI), false, false, nil
}

func (p *StaticPeer) EMSK() ([]byte, error) {
	if len(p.Emsk) == 0 {
		return nil, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "no EMSK provisioned on static peer")
	}
	return p.Emsk, nil
}

func (p *StaticPeer) Identity() string { return p.NAI }
