// Package keys implements component C4: deriving the RFC-3961 keyblock and
// checksum type used for per-message protection, from either the EAP EMSK
// (initiator) or the RADIUS MS-MPPE-Send-Key (acceptor).
package keys

import (
	"errors"
	"fmt"

	"github.com/jcmturner/gokrb5/v8/crypto"
	"github.com/jcmturner/gokrb5/v8/iana/chksumtype"
	"github.com/jcmturner/gokrb5/v8/iana/etypeID"
)

// EAPEMSKLen is the minimum EMSK length (RFC 5295): 64 bytes.
const EAPEMSKLen = 64

var (
	ErrKeyUnavailable = errors.New("gss-eap: key material unavailable")
	ErrKeyTooShort    = errors.New("gss-eap: EMSK shorter than the minimum 64 bytes")
)

// Key is the derived per-context RFC-3961 keyblock.
type Key struct {
	EncType      int32
	ChecksumType int32
	Value        []byte
}

// checksumForEtype mirrors rfc3961ChecksumTypeForKey: the checksum type is
// a function of the enctype alone.
func checksumForEtype(et int32) (int32, error) {
	switch et {
	case etypeID.AES256_CTS_HMAC_SHA1_96:
		return chksumtype.HMAC_SHA1_96_AES256, nil
	case etypeID.AES128_CTS_HMAC_SHA1_96:
		return chksumtype.HMAC_SHA1_96_AES128, nil
	default:
		return 0, fmt.Errorf("gss-eap: unsupported enctype %d", et)
	}
}

// randomToKey performs RFC 3961's random-to-key profile for enctype et,
// delegating to gokrb5's etype implementation.
func randomToKey(et int32, randomBits []byte) (Key, error) {
	e, err := crypto.GetEtype(et)
	if err != nil {
		return Key{}, fmt.Errorf("gss-eap: unknown enctype %d: %w", et, err)
	}

	cksumType, err := checksumForEtype(et)
	if err != nil {
		return Key{}, err
	}

	keyBytes := e.RandomToKey(randomBits)

	return Key{
		EncType:      et,
		ChecksumType: cksumType,
		Value:        keyBytes,
	}, nil
}

// DeriveFromEMSK implements the initiator key-derivation path: take the
// second half of the EAP EMSK (offset EAPEMSKLen/2, length EAPEMSKLen/2)
// and feed it to RFC-3961 random-to-key for enctype et.
func DeriveFromEMSK(emsk []byte, et int32) (Key, error) {
	if len(emsk) == 0 {
		return Key{}, ErrKeyUnavailable
	}
	if len(emsk) < EAPEMSKLen {
		return Key{}, ErrKeyTooShort
	}

	half := EAPEMSKLen / 2
	seed := emsk[half : half+half]

	return randomToKey(et, seed)
}

// DeriveFromMPPESendKey implements the acceptor key-derivation path: the
// decrypted MS-MPPE-Send-Key octets from the RADIUS Access-Accept are fed
// to the same random-to-key profile for enctype et.
func DeriveFromMPPESendKey(mppeSendKey []byte, et int32) (Key, error) {
	if len(mppeSendKey) == 0 {
		return Key{}, ErrKeyUnavailable
	}

	return randomToKey(et, mppeSendKey)
}
