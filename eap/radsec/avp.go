package radsec

import (
	"encoding/binary"
	"fmt"

	"layeh.com/radius"
)

// maxAttrValueLen is the largest value an ordinary RADIUS attribute may
// carry (255 byte attribute - 2 byte type/length header).
const maxAttrValueLen = 253

// AddEAPMessage splits an EAP message across as many EAP-Message
// attributes as required (RFC 3579 § 3.1), each no larger than
// maxAttrValueLen bytes, and adds them to p in order.
func AddEAPMessage(p *radius.Packet, eapMsg []byte) {
	if len(eapMsg) == 0 {
		p.Add(AttrEAPMessage, radius.Attribute{})
		return
	}

	for off := 0; off < len(eapMsg); off += maxAttrValueLen {
		end := off + maxAttrValueLen
		if end > len(eapMsg) {
			end = len(eapMsg)
		}
		p.Add(AttrEAPMessage, radius.Attribute(eapMsg[off:end]))
	}
}

// GetEAPMessage reassembles a (possibly fragmented) EAP-Message attribute
// set into a single byte slice, in attribute order.
func GetEAPMessage(p *radius.Packet) []byte {
	var out []byte
	for _, a := range p.Attributes[AttrEAPMessage] {
		out = append(out, []byte(a)...)
	}
	return out
}

// AddVSA appends a vendor-specific attribute (RFC 2865 § 5.26): a
// Vendor-Specific attribute whose value is
// <vendor-id:4 BE><vendor-type:1><vendor-length:1><vendor-value>.
func AddVSA(p *radius.Packet, vendorID uint32, vendorType uint8, value []byte) {
	buf := make([]byte, 4+2+len(value))
	binary.BigEndian.PutUint32(buf[0:4], vendorID)
	buf[4] = vendorType
	buf[5] = byte(2 + len(value))
	copy(buf[6:], value)

	p.Add(AttrVendor, radius.Attribute(buf))
}

// GetVSA extracts the first vendor-specific attribute matching vendorID and
// vendorType from p.
func GetVSA(p *radius.Packet, vendorID uint32, vendorType uint8) ([]byte, bool) {
	for _, a := range p.Attributes[AttrVendor] {
		raw := []byte(a)
		if len(raw) < 6 {
			continue
		}
		if binary.BigEndian.Uint32(raw[0:4]) != vendorID {
			continue
		}
		if raw[4] != vendorType {
			continue
		}
		vlen := int(raw[5])
		if vlen < 2 || 4+vlen > len(raw) {
			continue
		}
		return raw[6 : 4+vlen], true
	}
	return nil, false
}

// DecryptMPPEKey reverses RFC 2548 § 2.4.2's RADIUS-shared-secret salted
// encryption of an MS-MPPE-Send-Key/Recv-Key attribute value using the
// MD5-based stream cipher the RFC specifies, given the RADIUS shared
// secret and the request authenticator of the Access-Request this key was
// returned in response to.
func DecryptMPPEKey(secret, requestAuthenticator, encrypted []byte) ([]byte, error) {
	if len(encrypted) < 2 || (len(encrypted)-2)%16 != 0 {
		return nil, fmt.Errorf("gss-eap: malformed MPPE key attribute (len=%d)", len(encrypted))
	}

	salt := encrypted[0:2]
	cipher := encrypted[2:]

	plain := make([]byte, len(cipher))
	prev := append(append([]byte{}, requestAuthenticator...), salt...)

	for i := 0; i < len(cipher); i += 16 {
		b := md5sum(secret, prev)
		for j := 0; j < 16; j++ {
			plain[i+j] = cipher[i+j] ^ b[j]
		}
		prev = cipher[i : i+16]
	}

	if len(plain) == 0 {
		return nil, fmt.Errorf("gss-eap: empty MPPE key attribute")
	}
	keyLen := int(plain[0])
	if keyLen+1 > len(plain) {
		return nil, fmt.Errorf("gss-eap: MPPE key length %d exceeds attribute", keyLen)
	}

	return plain[1 : 1+keyLen], nil
}
