// Package token implements the wire framing for the GSS-EAP mechanism:
// the outer DER-ish token wrapper, the inner TLV stream it carries, the
// append-only conversation log used as MIC input, and the channel-binding
// wire encoding. It corresponds to components C1, C2 and C5 of the
// mechanism design.
package token

import (
	"errors"
	"fmt"
)

// Outer token-type discriminators (two bytes, big-endian), following the
// same RFC 4121-style convention the original mech_eap borrows from the
// Kerberos GSS mechanism: context-establishment tokens come first, then
// per-message tokens, then the mechanism's own extensions.
const (
	TokTypeInitiatorContext  uint16 = 0x0001
	TokTypeAcceptorContext   uint16 = 0x0002
	TokTypeMIC               uint16 = 0x0101
	TokTypeWrap              uint16 = 0x0201
	TokTypeExportName        uint16 = 0x0004
	TokTypeExportNameComp    uint16 = 0x0006
	TokTypeContextError      uint16 = 0x0003
)

var (
	// ErrTruncated indicates the outer token's declared length does not
	// match the number of bytes actually available.
	ErrTruncated = errors.New("gss-eap: truncated outer token")
	// ErrBadHeader indicates the leading 0x60/0x06 framing bytes, or a
	// non-minimal DER length, did not parse.
	ErrBadHeader = errors.New("gss-eap: malformed outer token header")
	// ErrWrongMech indicates the token's OID did not match the mechanism
	// in use for this context.
	ErrWrongMech = errors.New("gss-eap: wrong mechanism OID in token")
	// ErrWrongTokType indicates an outer token carried an unexpected
	// token-type value for the call that received it.
	ErrWrongTokType = errors.New("gss-eap: unexpected outer token type")
)

// derLengthSize returns the number of bytes (1-5) needed to encode n as a
// definite-length DER length field.
func derLengthSize(n int) int {
	if n < 0x80 {
		return 1
	}
	size := 1
	for v := n; v > 0; v >>= 8 {
		size++
	}
	return size
}

func derWriteLength(buf []byte, n int) []byte {
	if n < 0x80 {
		return append(buf, byte(n))
	}

	var octets []byte
	for v := n; v > 0; v >>= 8 {
		octets = append([]byte{byte(v)}, octets...)
	}
	buf = append(buf, 0x80|byte(len(octets)))
	return append(buf, octets...)
}

// derReadLength parses a definite-length DER length field starting at
// data[0], returning the decoded length and the number of bytes consumed.
// It rejects indefinite-length encodings and non-minimal multi-byte forms.
func derReadLength(data []byte) (n int, consumed int, err error) {
	if len(data) == 0 {
		return 0, 0, ErrTruncated
	}

	b := data[0]
	if b&0x80 == 0 {
		return int(b), 1, nil
	}

	nOctets := int(b &^ 0x80)
	if nOctets == 0 || nOctets > 4 {
		return 0, 0, ErrBadHeader
	}
	if len(data) < 1+nOctets {
		return 0, 0, ErrTruncated
	}

	n = 0
	for i := 0; i < nOctets; i++ {
		n = n<<8 | int(data[1+i])
	}
	if n < 0x80 {
		// would have fit in the short form: non-minimal encoding
		return 0, 0, ErrBadHeader
	}
	if n < 0 {
		return 0, 0, ErrBadHeader
	}

	return n, 1 + nOctets, nil
}

// EncodeOuter frames payload as an outer GSS-EAP token:
// 0x60 <der-length> 0x06 <oid-len> <oid> <tokType:2, BE> <payload>.
func EncodeOuter(oid []byte, tokType uint16, payload []byte) []byte {
	body := make([]byte, 0, 2+len(oid)+2+len(payload))
	body = append(body, 0x06, byte(len(oid)))
	body = append(body, oid...)
	body = append(body, byte(tokType>>8), byte(tokType))
	body = append(body, payload...)

	out := make([]byte, 0, 1+derLengthSize(len(body))+len(body))
	out = append(out, 0x60)
	out = derWriteLength(out, len(body))
	out = append(out, body...)
	return out
}

// DecodeOuter parses an outer GSS-EAP token, verifying the tag bytes, the
// DER length, and that the embedded OID matches mechOID. It returns the
// token-type and the inner payload.
func DecodeOuter(mechOID []byte, data []byte) (tokType uint16, payload []byte, err error) {
	if len(data) < 1 || data[0] != 0x60 {
		return 0, nil, ErrBadHeader
	}

	bodyLen, consumed, err := derReadLength(data[1:])
	if err != nil {
		return 0, nil, err
	}
	body := data[1+consumed:]
	if len(body) < bodyLen {
		return 0, nil, ErrTruncated
	}
	body = body[:bodyLen]

	if len(body) < 2 || body[0] != 0x06 {
		return 0, nil, ErrBadHeader
	}
	oidLen := int(body[1])
	if len(body) < 2+oidLen+2 {
		return 0, nil, ErrTruncated
	}
	oid := body[2 : 2+oidLen]
	if string(oid) != string(mechOID) {
		return 0, nil, ErrWrongMech
	}

	rest := body[2+oidLen:]
	tokType = uint16(rest[0])<<8 | uint16(rest[1])
	payload = rest[2:]

	return tokType, payload, nil
}

// SubHeaderBytes returns the mechanism sub-header recorded into the
// conversation log for a context token: 0x06, oid-len, oid-bytes, and the
// two-byte token-type -- everything inside the outer 0x60/DER-length
// wrapper. The original mech_eap records this sub-header rather than the
// outer framing, since the framing carries no semantic content for the
// MIC to protect.
func SubHeaderBytes(oid []byte, tokType uint16) []byte {
	out := make([]byte, 0, 2+len(oid)+2)
	out = append(out, 0x06, byte(len(oid)))
	out = append(out, oid...)
	out = append(out, byte(tokType>>8), byte(tokType))
	return out
}

// TokTypeName returns a human-readable name for a token-type value, for use
// in error messages and logs.
func TokTypeName(t uint16) string {
	switch t {
	case TokTypeInitiatorContext:
		return "initiator-context"
	case TokTypeAcceptorContext:
		return "acceptor-context"
	case TokTypeMIC:
		return "mic"
	case TokTypeWrap:
		return "wrap"
	case TokTypeExportName:
		return "export-name"
	case TokTypeExportNameComp:
		return "export-name-composite"
	case TokTypeContextError:
		return "context-error"
	default:
		return fmt.Sprintf("0x%04x", t)
	}
}
