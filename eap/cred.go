package eap

import (
	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/radsec"
)

// Credential holds the initiator and/or acceptor material a context is
// established with: an EAPPeer factory for initiating, and RADIUS
// connection details plus acceptor identity AVPs for accepting.
type Credential struct {
	name  *naiName
	usage gssapi.CredUsage

	newPeer func() (EAPPeer, error)

	radiusCfg radsec.Config
	attrs     radsec.AcceptorAttrs
	radius    RadiusClient
}

func (c *Credential) Release() error {
	c.newPeer = nil
	c.radius = nil
	return nil
}

func (c *Credential) Inquire() (*gssapi.CredInfo, error) {
	name := ""
	if c.name != nil {
		name = c.name.value
	}

	return &gssapi.CredInfo{
		Name:     name,
		NameType: gssapi.GSS_EAP_NT_NAI,
		Usage:    c.usage,
		Mechs:    []gssapi.GssMech{gssapi.GSS_MECH_EAP},
	}, nil
}

func (c *Credential) Add(_ gssapi.GssName, mech gssapi.GssMech, usage gssapi.CredUsage, _ *gssapi.GssLifetime, _ *gssapi.GssLifetime) error {
	if mech != gssapi.GSS_MECH_EAP {
		return newErr(gssapi.ErrBadMech, minorCredMechMismatch, "add: unsupported mechanism")
	}
	c.usage = usage
	return nil
}

func (c *Credential) InquireByMech(mech gssapi.GssMech) (*gssapi.CredInfo, error) {
	if mech != gssapi.GSS_MECH_EAP {
		return nil, newErr(gssapi.ErrBadMech, minorCredMechMismatch, "inquire_by_mech: unsupported mechanism")
	}
	return c.Inquire()
}
