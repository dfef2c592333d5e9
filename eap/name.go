package eap

import (
	"fmt"

	gssapi "github.com/janetuk/moonshot"
)

// naiName implements gssapi.GssName for Network Access Identifiers
// ("user@realm", RFC 4282), the only name form GSS-EAP principals take
// (spec §3 "Name").
type naiName struct {
	value string
}

func newNAIName(value string) *naiName {
	return &naiName{value: value}
}

func (n *naiName) Compare(other gssapi.GssName) (bool, error) {
	o, ok := other.(*naiName)
	if !ok {
		return false, nil
	}
	return n.value == o.value, nil
}

func (n *naiName) Display() (string, gssapi.GssNameType, error) {
	return n.value, gssapi.GSS_EAP_NT_NAI, nil
}

func (n *naiName) Release() error { return nil }

func (n *naiName) InquireMechs() ([]gssapi.GssMech, error) {
	return []gssapi.GssMech{gssapi.GSS_MECH_EAP}, nil
}

func (n *naiName) Canonicalize(mech gssapi.GssMech) (gssapi.GssName, error) {
	if mech != gssapi.GSS_MECH_EAP {
		return nil, newErr(gssapi.ErrBadMech, minorWrongMech, "canonicalize: unsupported mechanism")
	}
	return n, nil
}

// Export implements RFC 2743 § 2.4.15: a mechanism OID-prefixed,
// length-prefixed token carrying the flat NAI string, per the "always emit
// the OID-prefixed form" decision recorded for the Open Question on
// composite-name export (§9).
func (n *naiName) Export() ([]byte, error) {
	oid := []byte(gssapi.GSS_MECH_EAP.Oid())
	out := make([]byte, 0, 2+len(oid)+4+len(n.value))
	out = append(out, 0x04, 0x01) // exported-name token tag (RFC 2743 §3.2)
	out = append(out, byte(len(oid)>>8), byte(len(oid)))
	out = append(out, oid...)
	nameLen := len(n.value)
	out = append(out, byte(nameLen>>24), byte(nameLen>>16), byte(nameLen>>8), byte(nameLen))
	out = append(out, n.value...)
	return out, nil
}

func (n *naiName) String() string {
	return fmt.Sprintf("naiName(%s)", n.value)
}
