package keys

import (
	"fmt"

	"github.com/jcmturner/gokrb5/v8/crypto"
)

// Key usage numbers for the RFC-3961 key-derivation-for-usage construction
// (RFC 3961 § 4), scoped to this mechanism's own protocol rather than
// reusing Kerberos' AP-REQ/AP-REP usage numbers.
const (
	KeyUsageInitiatorSign  uint32 = 25
	KeyUsageAcceptorSign   uint32 = 26
	KeyUsageInitiatorSeal  uint32 = 27
	KeyUsageAcceptorSeal   uint32 = 28
)

// GetMIC computes a checksum over data using usage, per RFC 2743 GSS_GetMIC
// delegated to the RFC-3961 primitive layer.
func (k Key) GetMIC(data []byte, usage uint32) ([]byte, error) {
	e, err := crypto.GetEtype(k.EncType)
	if err != nil {
		return nil, fmt.Errorf("gss-eap: getmic: %w", err)
	}

	return e.GetChecksumHash(k.Value, data, usage)
}

// VerifyMIC checks a checksum produced by GetMIC.
func (k Key) VerifyMIC(data, mic []byte, usage uint32) (bool, error) {
	e, err := crypto.GetEtype(k.EncType)
	if err != nil {
		return false, fmt.Errorf("gss-eap: verifymic: %w", err)
	}

	return e.VerifyChecksum(k.Value, data, mic, usage), nil
}

// Wrap encrypts msg for confidentiality (GSS_Wrap with conf_req=true),
// returning the ciphertext and the initial cipher state (ivec) reported by
// the encryption type.
func (k Key) Wrap(msg []byte, usage uint32) (ciphertext, ivec []byte, err error) {
	e, err := crypto.GetEtype(k.EncType)
	if err != nil {
		return nil, nil, fmt.Errorf("gss-eap: wrap: %w", err)
	}

	ivec, ciphertext, err = e.EncryptMessage(k.Value, msg, usage)
	if err != nil {
		return nil, nil, fmt.Errorf("gss-eap: wrap: %w", err)
	}

	return ciphertext, ivec, nil
}

// Unwrap decrypts a message produced by Wrap.
func (k Key) Unwrap(ciphertext []byte, usage uint32) ([]byte, error) {
	e, err := crypto.GetEtype(k.EncType)
	if err != nil {
		return nil, fmt.Errorf("gss-eap: unwrap: %w", err)
	}

	msg, err := e.DecryptMessage(k.Value, ciphertext, usage)
	if err != nil {
		return nil, fmt.Errorf("gss-eap: unwrap: %w", err)
	}

	return msg, nil
}
