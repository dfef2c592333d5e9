// Package eap provides a gssapi.Provider implementing the GSS-EAP
// mechanism: federated authentication bridging an EAP method exchange
// (initiator side) and a RADIUS/RadSec AAA transaction (acceptor side)
// into GSS-API context establishment.
package eap

import (
	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/radsec"
)

// ProviderName is the identifier this mechanism registers itself under
// with gssapi.RegisterProvider/NewProvider.
const ProviderName = "GSS-EAP"

func init() {
	gssapi.RegisterProvider(ProviderName, func() (gssapi.Provider, error) {
		return &provider{}, nil
	})
}

// provider implements gssapi.Provider for the GSS-EAP mechanism.
type provider struct{}

// NewProvider constructs a GSS-EAP provider directly, for callers that
// don't want to go through the name-based registry.
func NewProvider() gssapi.Provider { return &provider{} }

func (p *provider) Name() string { return ProviderName }

func (p *provider) ImportName(name string, nameType gssapi.GssNameType) (gssapi.GssName, error) {
	if nameType != gssapi.GSS_EAP_NT_NAI && nameType != gssapi.GSS_NT_EXPORT_NAME {
		return nil, newErr(gssapi.ErrBadName, minorWrongMech, "unsupported name type for GSS-EAP")
	}
	return newNAIName(name), nil
}

func (p *provider) AcquireCredential(name gssapi.GssName, mechs []gssapi.GssMech, usage gssapi.CredUsage, _ *gssapi.GssLifetime) (gssapi.Credential, error) {
	if !mechSetOK(mechs) {
		return nil, newErr(gssapi.ErrBadMech, minorCredMechMismatch, "requested mechanism set does not include GSS-EAP")
	}

	cred := &Credential{usage: usage}
	if nn, ok := name.(*naiName); ok {
		cred.name = nn
	}
	return cred, nil
}

func mechSetOK(mechs []gssapi.GssMech) bool {
	if len(mechs) == 0 {
		return true
	}
	for _, m := range mechs {
		if m == gssapi.GSS_MECH_EAP {
			return true
		}
	}
	return false
}

// WithEAPPeer supplies the EAPPeer factory an initiator credential will use
// to drive the EAP method exchange. It is a GSS-EAP-specific option, not
// part of gssapi.InitSecContextOption, and is applied to the Credential
// before calling InitSecContext.
func WithEAPPeer(cred gssapi.Credential, newPeer func() (EAPPeer, error)) {
	if c, ok := cred.(*Credential); ok {
		c.newPeer = newPeer
	}
}

// WithRadiusServer configures the RADIUS/RadSec transport and acceptor
// identity AVPs an acceptor credential will use. It is a GSS-EAP-specific
// option applied to the Credential before calling AcceptSecContext.
func WithRadiusServer(cred gssapi.Credential, cfg radsec.Config, attrs radsec.AcceptorAttrs) {
	if c, ok := cred.(*Credential); ok {
		c.radiusCfg = cfg
		c.attrs = attrs
	}
}

// WithRadiusClient injects a RadiusClient directly, bypassing
// NewRadiusClient. It exists for tests that drive the acceptor side
// against a fake AAA transport instead of a live RadSec server.
func WithRadiusClient(cred gssapi.Credential, rc RadiusClient) {
	if c, ok := cred.(*Credential); ok {
		c.radius = rc
	}
}

func (p *provider) InitSecContext(name gssapi.GssName, opts ...gssapi.InitSecContextOption) (gssapi.SecContext, error) {
	var o gssapi.InitSecContextOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := newContext(roleInitiator)
	if o.Flags != 0 {
		c.flags = o.Flags
	}
	if o.ChannelBinding != nil {
		c.channelBinding = o.ChannelBinding
	}

	var peer EAPPeer
	if cred, ok := o.Credential.(*Credential); ok {
		if cred.newPeer != nil {
			p, err := cred.newPeer()
			if err != nil {
				return nil, newErr(gssapi.ErrDefectiveCredential, minorPeerAuthFailure, "constructing eap peer: %v", err)
			}
			peer = p
		}
		if cred.name != nil {
			c.initiatorName = cred.name
		}
	}

	// name is the target acceptor's identity (RFC 2743 GSS_Init_sec_context),
	// not the initiator's own -- it drives ACCEPTOR_NAME_REQ (§4.6 INITIAL),
	// not Inquire's InitiatorName.
	if nn, ok := name.(*naiName); ok {
		c.acceptorName = nn
		if peer == nil {
			peer = &StaticPeer{NAI: nn.value}
		}
	}

	c.initiatorSub = &initiatorSubstate{peer: peer}

	return c, nil
}

func (p *provider) AcceptSecContext(opts ...gssapi.AcceptSecContextOption) (gssapi.SecContext, error) {
	var o gssapi.AcceptSecContextOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := newContext(roleAcceptor)
	if o.ChannelBinding != nil {
		c.channelBinding = o.ChannelBinding
	}

	cred, _ := o.Credential.(*Credential)

	var rc RadiusClient
	var attrs radsec.AcceptorAttrs
	if cred != nil {
		attrs = cred.attrs
		if cred.radius != nil {
			rc = cred.radius
		} else if cred.radiusCfg.Server != "" {
			rc = NewRadiusClient(cred.radiusCfg, cred.attrs)
		}
	}

	c.acceptorSub = &acceptorSubstate{radius: rc, attrs: attrs}

	return c, nil
}

func (p *provider) ImportSecContext(b []byte) (gssapi.SecContext, error) {
	return importContext(b)
}

func (p *provider) InquireNamesForMech(m gssapi.GssMech) ([]gssapi.GssNameType, error) {
	if m != gssapi.GSS_MECH_EAP {
		return nil, newErr(gssapi.ErrBadMech, minorWrongMech, "inquire_names_for_mech: unsupported mechanism")
	}
	return []gssapi.GssNameType{gssapi.GSS_EAP_NT_NAI, gssapi.GSS_NT_EXPORT_NAME}, nil
}

func (p *provider) IndicateMechs() ([]gssapi.GssMech, error) {
	return []gssapi.GssMech{gssapi.GSS_MECH_EAP}, nil
}

func (p *provider) HasExtension(e gssapi.GssapiExtension) bool {
	return false
}
