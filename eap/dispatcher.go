package eap

import (
	"encoding/binary"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/token"
	"github.com/janetuk/moonshot/internal/obslog"
)

var smLog = obslog.For("eap.dispatcher")

// handlerFunc implements one state's worth of the context-establishment
// state machine. inputs holds the inner tokens decoded from the peer's
// message for this step (nil on the initiator's first call, which has no
// input). It returns the inner tokens to emit, the state to transition to
// on success, and the kinds among inputs that this state recognizes -- used
// by smStep to catch a CRITICAL-flagged inner token that no handler
// accounted for (§4.8 step 4).
type handlerFunc func(c *Context, inputs []token.Inner) (outputs []token.Inner, next state, verified []uint32, err *smError)

// initiatorTable and acceptorTable hold exactly one handler per state that
// side of the exchange can be in, mirroring the linear INITIAL ->
// AUTHENTICATE -> INITIATOR_EXTS/ACCEPTOR_EXTS -> ESTABLISHED progression
// from §4.6/§4.7 (the AUTHENTICATE state is reentered until the EAP method
// and, on the acceptor, the RADIUS exchange, both report completion).
var initiatorTable = map[state]handlerFunc{}
var acceptorTable = map[state]handlerFunc{}

func outerTokTypeFor(r role) uint16 {
	if r == roleInitiator {
		return token.TokTypeInitiatorContext
	}
	return token.TokTypeAcceptorContext
}

// smStep implements the generic SM dispatcher algorithm (§4.8): verify and
// record the input token's header, decode its inner tokens, look up this
// side's handler for the current state, invoke it, record and encode this
// side's output, and advance state. On the acceptor, a fatal error from the
// handler is squashed through the wire whitelist and reported to the peer
// as a single CONTEXT_ERR inner token instead of propagating the outer
// token exchange further.
func smStep(c *Context, inputOuter []byte) (outputOuter []byte, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.established {
		return nil, newErr(gssapi.ErrFailure, minorContextEstablished, "context already established")
	}

	var inputs []token.Inner

	if len(inputOuter) > 0 {
		inTokType, payload, derr := token.DecodeOuter(c.mechOID, inputOuter)
		if derr != nil {
			return nil, newErr(gssapi.ErrDefectiveToken, minorTokTrunc, "decoding outer token: %v", derr)
		}

		wantTokType := outerTokTypeFor(otherRole(c.role))
		if inTokType != wantTokType {
			return nil, newErr(gssapi.ErrDefectiveToken, minorWrongTokID, "unexpected outer token type %s", token.TokTypeName(inTokType))
		}

		c.conversation.Record(token.SubHeaderBytes(c.mechOID, inTokType), payload)

		toks, derr := token.DecodeInnerStream(payload)
		if derr != nil {
			return nil, newErr(gssapi.ErrDefectiveToken, minorTokTrunc, "decoding inner tokens: %v", derr)
		}
		inputs = toks

		if errTok, ok := token.Find(inputs, token.ITokContextErr); ok {
			return nil, decodeContextErr(errTok.Body)
		}
	}

	table := initiatorTable
	if c.role == roleAcceptor {
		table = acceptorTable
	}

	handler, ok := table[c.state]
	if !ok {
		return nil, newErr(gssapi.ErrDefectiveToken, minorBadDirection, "no handler for state %s", c.state)
	}

	fromState := c.state
	outputs, next, verified, herr := handler(c, inputs)

	if herr == nil {
		if unk, ok := firstUnverifiedCritical(inputs, verified); ok {
			herr = newErr(gssapi.ErrUnavailable, minorCritItokUnavailable, "critical inner token kind %d not recognized in state %s", unk, fromState)
		}
	}

	outTokType := outerTokTypeFor(c.role)

	if herr != nil {
		smLog.Warn("handler returned error", "state", fromState.String(), "role", c.role, "err", herr.Error())

		if c.role != roleAcceptor {
			return nil, herr
		}

		wm, minor := squash(herr)
		outputs = []token.Inner{token.NewInner(token.ITokContextErr, true, encodeContextErr(wm, minor))}
		next = c.state // do not advance on error

		payload := token.EncodeInnerStream(outputs)
		c.conversation.Record(token.SubHeaderBytes(c.mechOID, outTokType), payload)
		return token.EncodeOuter(c.mechOID, outTokType, payload), herr
	}

	payload := token.EncodeInnerStream(outputs)
	c.conversation.Record(token.SubHeaderBytes(c.mechOID, outTokType), payload)

	c.state = next
	smLog.Debug("state transition", "from", fromState.String(), "to", next.String(), "role", c.role)
	if next == stateEstablished {
		c.established = true
		smLog.Info("context established", "role", c.role)
	}

	if len(payload) == 0 && c.established {
		return nil, nil
	}

	return token.EncodeOuter(c.mechOID, outTokType, payload), nil
}

// firstUnverifiedCritical implements §4.8 step 4: after the handler walk,
// any input inner token flagged CRITICAL that no handler recognized for
// this state must fail the exchange rather than be silently dropped.
func firstUnverifiedCritical(inputs []token.Inner, verified []uint32) (uint32, bool) {
	ok := make(map[uint32]bool, len(verified))
	for _, k := range verified {
		ok[k] = true
	}
	for _, in := range inputs {
		if in.Critical() && !ok[in.Kind()] {
			return in.Kind(), true
		}
	}
	return 0, false
}

func otherRole(r role) role {
	if r == roleInitiator {
		return roleAcceptor
	}
	return roleInitiator
}

// encodeContextErr serializes a wireMajor/minorCode pair as the body of a
// CONTEXT_ERR inner token: two 4-byte big-endian fields.
func encodeContextErr(wm wireMajor, minor minorCode) []byte {
	body := make([]byte, 8)
	binary.BigEndian.PutUint32(body[0:4], uint32(wm))
	binary.BigEndian.PutUint32(body[4:8], uint32(minor))
	return body
}

// decodeContextErr parses a peer's CONTEXT_ERR inner token body back into a
// Go error wrapping the appropriate gssapi sentinel.
func decodeContextErr(body []byte) *smError {
	if len(body) < 8 {
		return newErr(gssapi.ErrDefectiveToken, minorBadErrorToken, "truncated context-error token")
	}
	wm := wireMajor(binary.BigEndian.Uint32(body[0:4]))
	minor := minorCode(binary.BigEndian.Uint32(body[4:8]))
	return newErr(majorForWire(wm), minor, "peer reported a context error")
}
