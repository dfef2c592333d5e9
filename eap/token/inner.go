package token

import (
	"encoding/binary"
	"errors"
)

// InnerHeaderLength is the fixed 8-byte header (type + length) preceding
// every inner token's body.
const InnerHeaderLength = 8

// CriticalFlag is the high bit of an inner token's type word. A receiver
// that does not recognize or process a critical inner token must fail the
// exchange.
const CriticalFlag uint32 = 1 << 31

// Inner token kinds (low 31 bits of the type word). Values are assigned in
// the same relative order util_token.c enumerates them in, though the
// concrete numbers are specific to this rewrite.
const (
	ITokAcceptorNameReq uint32 = iota + 1
	ITokAcceptorNameResp
	ITokEAPReq
	ITokEAPResp
	ITokGSSFlags
	ITokGSSChannelBindings
	ITokInitiatorMIC
	ITokAcceptorMIC
	ITokReauthReq
	ITokReauthResp
	ITokReauthCreds
	ITokContextErr
	ITokVendorInfo
	ITokInitiatorExts
	ITokAcceptorExts
)

var ErrDuplicateInner = errors.New("gss-eap: duplicate inner token kind in outer token")

// Inner is one (type, length, body) entry of the inner-token stream. Kind
// returns the token kind with the criticality bit masked off.
type Inner struct {
	Type uint32
	Body []byte
}

func NewInner(kind uint32, critical bool, body []byte) Inner {
	t := kind
	if critical {
		t |= CriticalFlag
	}
	return Inner{Type: t, Body: body}
}

func (i Inner) Kind() uint32      { return i.Type &^ CriticalFlag }
func (i Inner) Critical() bool    { return i.Type&CriticalFlag != 0 }
func (i Inner) Encoded() int      { return InnerHeaderLength + len(i.Body) }

// EncodeInnerStream concatenates a sequence of inner tokens into one byte
// stream, in order, preserving round-trip with DecodeInnerStream.
func EncodeInnerStream(toks []Inner) []byte {
	n := 0
	for _, t := range toks {
		n += t.Encoded()
	}

	out := make([]byte, 0, n)
	for _, t := range toks {
		var hdr [InnerHeaderLength]byte
		binary.BigEndian.PutUint32(hdr[0:4], t.Type)
		binary.BigEndian.PutUint32(hdr[4:8], uint32(len(t.Body)))
		out = append(out, hdr[:]...)
		out = append(out, t.Body...)
	}
	return out
}

// DecodeInnerStream splits an outer token's payload into its component
// inner tokens. It fails with ErrTruncated if any declared length would
// exceed the remaining bytes, and with ErrDuplicateInner if the same kind
// appears twice.
func DecodeInnerStream(data []byte) ([]Inner, error) {
	var out []Inner
	seen := make(map[uint32]bool)

	for len(data) > 0 {
		if len(data) < InnerHeaderLength {
			return nil, ErrTruncated
		}

		typ := binary.BigEndian.Uint32(data[0:4])
		length := binary.BigEndian.Uint32(data[4:8])
		data = data[InnerHeaderLength:]

		if uint64(length) > uint64(len(data)) {
			return nil, ErrTruncated
		}

		body := data[:length]
		data = data[length:]

		kind := typ &^ CriticalFlag
		if seen[kind] {
			return nil, ErrDuplicateInner
		}
		seen[kind] = true

		out = append(out, Inner{Type: typ, Body: body})
	}

	return out, nil
}

// Find returns the first inner token of the given kind, ignoring the
// criticality bit, and whether one was present.
func Find(toks []Inner, kind uint32) (Inner, bool) {
	for _, t := range toks {
		if t.Kind() == kind {
			return t, true
		}
	}
	return Inner{}, false
}
