package eap

import (
	"context"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/token"
)

func init() {
	initiatorTable[stateInitial] = initiatorStart
	initiatorTable[stateAuthenticate] = initiatorAuthenticate
	initiatorTable[stateAcceptorExts] = initiatorFinish
}

// initiatorStart drives the EAP peer for its first step (no request yet
// available) and emits the resulting EAP-Response, plus an acceptor-name
// request if the caller named a target (§4.6 "INITIAL"). Channel bindings
// are not sent here: no session key exists yet to wrap them under, so that
// waits for INITIATOR_EXTS once AUTHENTICATE concludes.
func initiatorStart(c *Context, _ []token.Inner) ([]token.Inner, state, []uint32, *smError) {
	sub := c.initiatorSub
	if sub == nil || sub.peer == nil {
		return nil, 0, nil, newErr(gssapi.ErrDefectiveCredential, minorNoAcceptorName, "no EAP peer configured on initiator context")
	}

	resp, done, success, err := sub.peer.Step(context.Background(), nil)
	if err != nil {
		return nil, 0, nil, newErr(gssapi.ErrDefectiveCredential, minorPeerAuthFailure, "eap peer step: %v", err)
	}
	sub.eapDone, sub.eapSuccess, sub.lastEAPResp = done, success, resp

	var out []token.Inner
	if c.acceptorName != nil {
		if name, _, derr := c.acceptorName.Display(); derr == nil {
			out = append(out, token.NewInner(token.ITokAcceptorNameReq, false, []byte(name)))
		}
	}
	out = append(out, token.NewInner(token.ITokEAPResp, true, resp))

	return out, stateAuthenticate, nil, nil
}

// initiatorAuthenticate feeds the acceptor's EAP-Request into the peer and
// either emits the next EAP-Response (looping in AUTHENTICATE) or, once the
// method concludes, derives the session key from the EMSK and, now that a
// key exists, builds the INITIATOR_EXTS round: the extensions bitmap,
// GSS_FLAGS, the channel bindings wrapped for confidentiality under the new
// key (§4.5), and the initiator's MIC over the conversation so far
// including this round. That round is piggybacked onto this same message
// rather than spent on an otherwise-empty extra one: the acceptor only
// reaches INITIATOR_EXTS once it has also finished its own RADIUS
// exchange, so there is no reason to wait for a separate round trip.
func initiatorAuthenticate(c *Context, inputs []token.Inner) ([]token.Inner, state, []uint32, *smError) {
	sub := c.initiatorSub

	if errTok, ok := token.Find(inputs, token.ITokContextErr); ok {
		return nil, 0, nil, decodeContextErr(errTok.Body)
	}

	verified := []uint32{token.ITokEAPReq}
	if nameResp, ok := token.Find(inputs, token.ITokAcceptorNameResp); ok {
		verified = append(verified, token.ITokAcceptorNameResp)
		if c.acceptorName == nil {
			c.acceptorName = newNAIName(string(nameResp.Body))
		}
	}

	req, hasReq := token.Find(inputs, token.ITokEAPReq)
	if !hasReq {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorMissingEAPRequest, "acceptor did not send an EAP request")
	}

	resp, done, success, err := sub.peer.Step(context.Background(), req.Body)
	if err != nil {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveCredential, minorPeerAuthFailure, "eap peer step: %v", err)
	}
	sub.eapDone, sub.eapSuccess, sub.lastEAPResp = done, success, resp

	if !done {
		return []token.Inner{token.NewInner(token.ITokEAPResp, true, resp)}, stateAuthenticate, verified, nil
	}

	if !success {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveCredential, minorPeerAuthFailure, "eap method reported failure")
	}

	emsk, err := sub.peer.EMSK()
	if err != nil {
		return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "retrieving EMSK: %v", err)
	}

	key, derr := keys.DeriveFromEMSK(emsk, defaultEncType)
	if derr != nil {
		return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorKeyTooShort, "deriving session key: %v", derr)
	}
	c.key = &key

	var out []token.Inner
	if len(resp) > 0 {
		out = append(out, token.NewInner(token.ITokEAPResp, false, resp))
	}
	out = append(out, token.NewInner(token.ITokInitiatorExts, false, encodeExtsBitmap(0)))
	out = append(out, token.NewInner(token.ITokGSSFlags, false, encodeGSSFlags(c.flags)))

	var cbData []byte
	if c.channelBinding != nil {
		cbData = c.channelBinding.Data
	}
	plain := token.MakeChannelBindingData(c.conversation.Bytes(), c.conversation.Len(), cbData)
	ciphertext, _, werr := c.key.Wrap(plain, keys.KeyUsageInitiatorSeal)
	if werr != nil {
		return nil, 0, verified, newErr(gssapi.ErrFailure, minorKeyUnavailable, "wrapping channel bindings: %v", werr)
	}
	out = append(out, token.NewInner(token.ITokGSSChannelBindings, true, ciphertext))

	micInput := append(append([]byte{}, c.conversation.Bytes()...), func() []byte {
		hdr := token.SubHeaderBytes(c.mechOID, outerTokTypeFor(c.role))
		body := token.EncodeInnerStream(out)
		return append(hdr, body...)
	}()...)

	mic, merr := c.key.GetMIC(micInput, keys.KeyUsageInitiatorSign)
	if merr != nil {
		return nil, 0, verified, newErr(gssapi.ErrFailure, minorKeyUnavailable, "computing initiator MIC: %v", merr)
	}
	out = append(out, token.NewInner(token.ITokInitiatorMIC, true, mic))

	return out, stateAcceptorExts, verified, nil
}

// initiatorFinish verifies the acceptor's closing MIC (§4.6 "ACCEPTOR_EXTS",
// required) and completes establishment. The initiator has nothing left to
// send at this point: its own MIC was already emitted alongside its channel
// bindings in initiatorAuthenticate's completion round.
func initiatorFinish(c *Context, inputs []token.Inner) ([]token.Inner, state, []uint32, *smError) {
	verified := []uint32{token.ITokAcceptorExts}

	micTok, ok := token.Find(inputs, token.ITokAcceptorMIC)
	if !ok {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorMissingRequiredItok, "acceptor did not send its MIC")
	}
	verified = append(verified, token.ITokAcceptorMIC)
	if c.key == nil {
		return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "no session key available to verify acceptor MIC")
	}

	// The acceptor MIC covers every inner token of this message, so an
	// unrecognized critical token is reported before the MIC is checked.
	if unk, ok := firstUnverifiedCritical(inputs, verified); ok {
		return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorCritItokUnavailable, "critical inner token kind %d not recognized in state %s", unk, c.state)
	}

	ok, verr := c.key.VerifyMIC(c.conversation.MICInput(micTok.Encoded()), micTok.Body, keys.KeyUsageAcceptorSign)
	if verr != nil || !ok {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorBadErrorToken, "acceptor MIC verification failed")
	}

	return nil, stateEstablished, verified, nil
}
