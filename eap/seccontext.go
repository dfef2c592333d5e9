package eap

import (
	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/seq"
)

// Continue implements gssapi.SecContext.Continue, driving one step of the
// establishment state machine (§4.8).
func (c *Context) Continue(tokIn []byte) (tokOut []byte, err error) {
	out, err := smStep(c, tokIn)
	if err != nil {
		return out, err
	}

	c.mu.Lock()
	if c.established && c.sendSeq == nil {
		c.sendSeq = seq.NewState(0, true, true)
		c.recvSeq = seq.NewState(0, true, true)
	}
	c.mu.Unlock()

	return out, nil
}

// GetMIC implements gssapi.SecContext.GetMIC.
func (c *Context) GetMIC(msg []byte, _ gssapi.QoP) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == nil {
		return nil, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "context not established")
	}

	usage := keys.KeyUsageInitiatorSign
	if c.role == roleAcceptor {
		usage = keys.KeyUsageAcceptorSign
	}

	// The send counter advances, but the sequence number is not part of a
	// detached MIC (see VerifyMIC).
	c.sendSeq.Next()

	return c.key.GetMIC(msg, usage)
}

// VerifyMIC implements gssapi.SecContext.VerifyMIC.
func (c *Context) VerifyMIC(msg []byte, tok []byte) (gssapi.QoP, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == nil {
		return 0, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "context not established")
	}

	usage := keys.KeyUsageAcceptorSign
	if c.role == roleAcceptor {
		usage = keys.KeyUsageInitiatorSign
	}

	// The per-message sequence number is not transmitted alongside a
	// detached MIC in this mechanism's framing, so replay/sequencing is
	// only enforced for Wrap()ped messages, which carry it in cleartext
	// as part of the wrapped envelope (see Unwrap).
	ok, err := c.key.VerifyMIC(msg, tok, usage)
	if err != nil {
		return 0, newErr(gssapi.ErrDefectiveToken, minorBadErrorToken, "mic verification error: %v", err)
	}
	if !ok {
		return 0, newErr(gssapi.ErrDefectiveToken, minorBadErrorToken, "mic verification failed")
	}
	return 0, nil
}

// Wrap implements gssapi.SecContext.Wrap. The wrapped envelope is the
// 8-byte big-endian sequence number followed by the RFC-3961 ciphertext
// (or, with confReq false, the cleartext message plus a MIC).
func (c *Context) Wrap(msgIn []byte, confReq bool, _ gssapi.QoP) (msgOut []byte, confState bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == nil {
		return nil, false, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "context not established")
	}

	usage := keys.KeyUsageInitiatorSeal
	if c.role == roleAcceptor {
		usage = keys.KeyUsageAcceptorSeal
	}

	seqno := c.sendSeq.Next()
	hdr := seqNoBytes(seqno)

	if !confReq {
		micUsage := keys.KeyUsageInitiatorSign
		if c.role == roleAcceptor {
			micUsage = keys.KeyUsageAcceptorSign
		}
		mic, merr := c.key.GetMIC(append(append([]byte{}, hdr...), msgIn...), micUsage)
		if merr != nil {
			return nil, false, newErr(gssapi.ErrFailure, minorKeyUnavailable, "wrap (plaintext) mic: %v", merr)
		}
		out := append(hdr, msgIn...)
		out = append(out, mic...)
		return out, false, nil
	}

	ciphertext, _, werr := c.key.Wrap(msgIn, usage)
	if werr != nil {
		return nil, false, newErr(gssapi.ErrFailure, minorKeyUnavailable, "wrap: %v", werr)
	}

	out := append(hdr, ciphertext...)
	return out, true, nil
}

// Unwrap implements gssapi.SecContext.Unwrap.
func (c *Context) Unwrap(msgIn []byte) (msgOut []byte, confState bool, qop gssapi.QoP, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == nil {
		return nil, false, 0, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "context not established")
	}
	if len(msgIn) < 8 {
		return nil, false, 0, newErr(gssapi.ErrDefectiveToken, minorTokTrunc, "wrapped message too short")
	}

	seqno := seqNoFromBytes(msgIn[:8])
	body := msgIn[8:]

	result, rerr := c.recvSeq.Check(seqno)
	if rerr != nil {
		return nil, false, 0, newErr(gssapi.ErrUnavailable, minorBindingsMismatch, "sequence check (%v): %v", result, rerr)
	}

	usage := keys.KeyUsageAcceptorSeal
	micUsage := keys.KeyUsageAcceptorSign
	if c.role == roleAcceptor {
		usage = keys.KeyUsageInitiatorSeal
		micUsage = keys.KeyUsageInitiatorSign
	}

	msg, derr := c.key.Unwrap(body, usage)
	if derr == nil {
		return msg, true, 0, nil
	}

	// Not valid ciphertext for this usage: fall back to the plaintext +
	// trailing-MIC framing produced when Wrap was called with confReq=false.
	const micLen = 12 // HMAC-SHA1-96 truncated checksum length
	if len(body) < micLen {
		return nil, false, 0, newErr(gssapi.ErrDefectiveToken, minorTokTrunc, "unwrap: %v", derr)
	}
	plain, mic := body[:len(body)-micLen], body[len(body)-micLen:]
	ok, verr := c.key.VerifyMIC(append(append([]byte{}, msgIn[:8]...), plain...), mic, micUsage)
	if verr != nil || !ok {
		return nil, false, 0, newErr(gssapi.ErrDefectiveToken, minorBadErrorToken, "unwrap: mic verification failed")
	}

	return plain, false, 0, nil
}

func seqNoBytes(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}

func seqNoFromBytes(b []byte) uint64 {
	var n uint64
	for i := 0; i < 8; i++ {
		n = n<<8 | uint64(b[i])
	}
	return n
}
