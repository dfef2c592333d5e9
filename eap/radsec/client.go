package radsec

import (
	"context"
	"fmt"
	"time"

	"layeh.com/radius"
)

// Config describes how to reach the RadSec/RADIUS AAA server for a single
// acceptor context. In a full deployment this would be loaded from a
// RadSec configuration file and stanza name (see internal/config); the
// core state machine only needs the resolved server address and secret.
type Config struct {
	Server  string
	Secret  []byte
	Timeout time.Duration
}

// AcceptorAttrs carries the acceptor-identity AVPs added to every
// Access-Request per the original mech_eap (util_radius.h).
type AcceptorAttrs struct {
	ServiceName     string
	HostName        string
	ServiceSpecific string
	RealmName       string
}

// Result is the acceptor-relevant subset of a RADIUS response.
type Result struct {
	Code          radius.Code
	EAPMessage    []byte
	State         []byte
	MSMPPESendKey []byte
	Raw           *radius.Packet
}

// SendAccessRequest performs one RADIUS round trip per §4.7's "RADIUS
// sub-protocol" steps: add User-Name (once learned), the acceptor identity
// AVPs, the (possibly fragmented) EAP-Message, and a cached State
// attribute if one carried over from a prior Access-Challenge.
func SendAccessRequest(ctx context.Context, cfg Config, userName string, attrs AcceptorAttrs, eapMsg []byte, cachedState []byte) (*Result, error) {
	pkt := radius.New(radius.CodeAccessRequest, cfg.Secret)

	if userName != "" {
		pkt.Add(AttrUserName, radius.Attribute(userName))
	}

	if attrs.ServiceName != "" {
		AddVSA(pkt, VendorPECUKERNA, PWGSSAcceptorServiceName, []byte(attrs.ServiceName))
	}
	if attrs.HostName != "" {
		AddVSA(pkt, VendorPECUKERNA, PWGSSAcceptorHostName, []byte(attrs.HostName))
	}
	if attrs.ServiceSpecific != "" {
		AddVSA(pkt, VendorPECUKERNA, PWGSSAcceptorServiceSpecific, []byte(attrs.ServiceSpecific))
	}
	if attrs.RealmName != "" {
		AddVSA(pkt, VendorPECUKERNA, PWGSSAcceptorRealmName, []byte(attrs.RealmName))
	}

	AddEAPMessage(pkt, eapMsg)

	if len(cachedState) > 0 {
		pkt.Add(AttrState, radius.Attribute(cachedState))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := radius.Client{}
	resp, err := client.Exchange(reqCtx, pkt, cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("gss-eap: radius exchange with %s: %w", cfg.Server, err)
	}

	result := &Result{
		Code:       resp.Code,
		EAPMessage: GetEAPMessage(resp),
		Raw:        resp,
	}

	if st, ok := resp.Attributes.Lookup(AttrState); ok {
		result.State = []byte(st)
	}

	if enc, ok := GetVSA(resp, VendorPECMicrosoft, PWMSMPPESendKey); ok {
		key, err := DecryptMPPEKey(cfg.Secret, pkt.Authenticator[:], enc)
		if err == nil {
			result.MSMPPESendKey = key
		}
	}

	return result, nil
}
