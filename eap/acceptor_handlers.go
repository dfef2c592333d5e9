package eap

import (
	"context"
	"crypto/subtle"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/janetuk/moonshot/eap/token"
)

func init() {
	acceptorTable[stateInitial] = acceptorAuthenticate
	acceptorTable[stateAuthenticate] = acceptorAuthenticate
	acceptorTable[stateInitiatorExts] = acceptorVerifyExts
}

// acceptorAuthenticate drives the RADIUS sub-protocol (§4.7): it forwards
// the initiator's current EAP-Response (wrapped as a RADIUS EAP-Message
// AVP, alongside the cached State attribute and the acceptor identity
// AVPs) to the AAA server, and relays back whatever the server responds
// with. INITIAL and AUTHENTICATE share one handler because the first
// round trip (identity response with no cached State) is otherwise
// identical to any later one. On the very first round it also answers an
// optional ACCEPTOR_NAME_REQ.
func acceptorAuthenticate(c *Context, inputs []token.Inner) ([]token.Inner, state, []uint32, *smError) {
	sub := c.acceptorSub
	if sub == nil || sub.radius == nil {
		return nil, 0, nil, newErr(gssapi.ErrDefectiveCredential, minorRadsecContextFailure, "no RADIUS client configured on acceptor context")
	}

	verified := []uint32{token.ITokEAPResp}

	var pre []token.Inner
	if nameReq, ok := token.Find(inputs, token.ITokAcceptorNameReq); ok {
		verified = append(verified, token.ITokAcceptorNameReq)
		pre = append(pre, token.NewInner(token.ITokAcceptorNameResp, false, nameReq.Body))
	}

	resp, ok := token.Find(inputs, token.ITokEAPResp)
	if !ok {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorMissingEAPRequest, "initiator did not send an EAP response")
	}

	if sub.learnedName == "" {
		sub.learnedName = string(resp.Body)
	}

	result, err := sub.radius.Exchange(context.Background(), sub.learnedName, resp.Body, sub.cachedState)
	if err != nil {
		return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorRadsecContextFailure, "radius exchange: %v", err)
	}
	sub.lastAVPs = result
	sub.cachedState = result.State

	switch result.Code {
	case radsec.CodeAccessChallenge:
		out := append(pre, token.NewInner(token.ITokEAPReq, true, result.EAPMessage))
		return out, stateAuthenticate, verified, nil

	case radsec.CodeAccessAccept:
		if len(result.MSMPPESendKey) == 0 {
			return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "access-accept carried no MS-MPPE-Send-Key")
		}

		key, derr := keys.DeriveFromMPPESendKey(result.MSMPPESendKey, defaultEncType)
		if derr != nil {
			return nil, 0, verified, newErr(gssapi.ErrUnavailable, minorKeyTooShort, "deriving session key: %v", derr)
		}
		c.key = &key
		c.initiatorName = newNAIName(sub.learnedName)

		out := pre
		if len(result.EAPMessage) > 0 {
			out = append(out, token.NewInner(token.ITokEAPReq, false, result.EAPMessage))
		}
		return out, stateInitiatorExts, verified, nil

	case radsec.CodeAccessReject:
		return nil, 0, verified, newErr(gssapi.ErrDefectiveCredential, minorRadiusAuthFailure, "radius server rejected the peer")

	default:
		return nil, 0, verified, newErr(gssapi.ErrFailure, minorUnknownRadiusCode, "unexpected radius response code %v", result.Code)
	}
}

// acceptorVerifyExts implements the acceptor's INITIATOR_EXTS state
// (§4.7): GSS_FLAGS is optional, GSS_CHANNEL_BINDINGS and INITIATOR_MIC are
// required and must both verify before the acceptor emits its own
// ACCEPTOR_MIC -- the reverse of that order would let the acceptor
// authenticate itself to a peer it hasn't yet authenticated it.
func acceptorVerifyExts(c *Context, inputs []token.Inner) ([]token.Inner, state, []uint32, *smError) {
	if c.key == nil {
		return nil, 0, nil, newErr(gssapi.ErrUnavailable, minorKeyUnavailable, "no session key available to verify initiator extensions")
	}

	verified := []uint32{token.ITokInitiatorExts, token.ITokEAPResp}

	if gf, ok := token.Find(inputs, token.ITokGSSFlags); ok {
		verified = append(verified, token.ITokGSSFlags)
		c.gssFlags = decodeGSSFlags(gf.Body) & defaultGSSFlags
	}

	cbTok, ok := token.Find(inputs, token.ITokGSSChannelBindings)
	if !ok {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorMissingRequiredItok, "initiator did not send channel bindings")
	}
	verified = append(verified, token.ITokGSSChannelBindings)

	plain, uerr := c.key.Unwrap(cbTok.Body, keys.KeyUsageInitiatorSeal)
	if uerr != nil {
		return nil, 0, verified, newErr(gssapi.ErrBadBindings, minorBindingsMismatch, "unwrapping channel bindings: %v", uerr)
	}

	var ours []byte
	if c.channelBinding != nil {
		ours = c.channelBinding.Data
	}
	prefix := c.conversation.MICInput(len(token.SubHeaderBytes(c.mechOID, outerTokTypeFor(otherRole(c.role)))) + len(token.EncodeInnerStream(inputs)))
	want := token.MakeChannelBindingData(prefix, len(prefix), ours)

	if subtle.ConstantTimeCompare(plain, want) != 1 {
		return nil, 0, verified, newErr(gssapi.ErrBadBindings, minorBindingsMismatch, "channel bindings do not match")
	}

	micTok, ok := token.Find(inputs, token.ITokInitiatorMIC)
	if !ok {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorMissingRequiredItok, "initiator did not send its MIC")
	}
	verified = append(verified, token.ITokInitiatorMIC)

	ok, verr := c.key.VerifyMIC(c.conversation.MICInput(micTok.Encoded()), micTok.Body, keys.KeyUsageInitiatorSign)
	if verr != nil || !ok {
		return nil, 0, verified, newErr(gssapi.ErrDefectiveToken, minorBadErrorToken, "initiator MIC verification failed")
	}

	extsBody := encodeExtsBitmap(0)
	exts := token.NewInner(token.ITokAcceptorExts, false, extsBody)

	micInput := append(append([]byte{}, c.conversation.Bytes()...), func() []byte {
		hdr := token.SubHeaderBytes(c.mechOID, outerTokTypeFor(c.role))
		body := token.EncodeInnerStream([]token.Inner{exts})
		return append(hdr, body...)
	}()...)

	mic, merr := c.key.GetMIC(micInput, keys.KeyUsageAcceptorSign)
	if merr != nil {
		return nil, 0, verified, newErr(gssapi.ErrFailure, minorKeyUnavailable, "computing acceptor MIC: %v", merr)
	}

	return []token.Inner{exts, token.NewInner(token.ITokAcceptorMIC, true, mic)}, stateEstablished, verified, nil
}
