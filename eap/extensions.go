package eap

import (
	"encoding/binary"

	gssapi "github.com/janetuk/moonshot"
	"github.com/jcmturner/gokrb5/v8/iana/etypeID"
)

// defaultEncType is the enctype used for session-key derivation and
// per-message protection. Open Question (§9): the mechanism negotiates no
// enctype of its own, so this rewrite fixes it to AES256-CTS-HMAC-SHA1-96,
// the strongest profile gokrb5 implements.
const defaultEncType = etypeID.AES256_CTS_HMAC_SHA1_96

// encodeExtsBitmap serializes the extension-negotiation capability bitmap
// carried in INITIATOR_EXTS/ACCEPTOR_EXTS tokens as a single big-endian
// uint32. No extensions are currently defined beyond the bit reserved for
// future acceptor-name negotiation, so a context always advertises zero.
func encodeExtsBitmap(bits uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, bits)
	return buf
}

// decodeExtsBitmap parses an extension-negotiation bitmap, treating a short
// or absent body as advertising no extensions.
func decodeExtsBitmap(body []byte) uint32 {
	if len(body) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(body)
}

// encodeGSSFlags serializes the initiator's requested flag set as carried
// in the GSS_FLAGS inner token, so the acceptor can negotiate down to the
// flags both sides actually support.
func encodeGSSFlags(f gssapi.ContextFlag) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(f))
	return buf
}

// decodeGSSFlags parses a GSS_FLAGS inner token body, treating a short or
// absent body as requesting no flags.
func decodeGSSFlags(body []byte) gssapi.ContextFlag {
	if len(body) < 4 {
		return 0
	}
	return gssapi.ContextFlag(binary.BigEndian.Uint32(body))
}
