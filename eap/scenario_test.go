package eap

import (
	"context"
	"crypto/rand"
	"errors"
	"testing"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/janetuk/moonshot/eap/token"
	"github.com/stretchr/testify/require"
)

// acceptAllRadius immediately accepts any EAP response and hands back msk
// as the MS-MPPE-Send-Key, so both sides of a test handshake derive the
// same session key.
type acceptAllRadius struct{ msk []byte }

func (r *acceptAllRadius) Exchange(context.Context, string, []byte, []byte) (*radsec.Result, error) {
	return &radsec.Result{
		Code:          radsec.CodeAccessAccept,
		EAPMessage:    []byte{0x03, 0x00, 0x00, 0x04},
		MSMPPESendKey: r.msk,
	}, nil
}

// rejectingRadius always returns an Access-Reject, for the negative path.
type rejectingRadius struct{}

func (rejectingRadius) Exchange(context.Context, string, []byte, []byte) (*radsec.Result, error) {
	return &radsec.Result{Code: radsec.CodeAccessReject}, nil
}

func newHandshakePair(t *testing.T, newRadius func(msk []byte) RadiusClient) (initiator, acceptor gssapi.SecContext, emsk []byte) {
	t.Helper()
	return newHandshakePairCB(t, newRadius, nil, nil)
}

// newHandshakePairCB is newHandshakePair extended with per-side channel
// binding data, so tests can exercise §4.5's bindings-mismatch failure (S2)
// alongside the matching-bindings happy path (where both are nil).
func newHandshakePairCB(t *testing.T, newRadius func(msk []byte) RadiusClient, initiatorCB, acceptorCB []byte) (initiator, acceptor gssapi.SecContext, emsk []byte) {
	t.Helper()

	emsk = make([]byte, keys.EAPEMSKLen)
	_, err := rand.Read(emsk)
	require.NoError(t, err)

	initProvider := NewProvider()
	acceptorName, err := initProvider.ImportName("acceptor@example.org", gssapi.GSS_EAP_NT_NAI)
	require.NoError(t, err)

	initCred, err := initProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageInitiateOnly, nil)
	require.NoError(t, err)
	WithEAPPeer(initCred, func() (EAPPeer, error) {
		return &StaticPeer{NAI: "user@example.org", Emsk: emsk}, nil
	})

	var initOpts []gssapi.InitSecContextOption
	initOpts = append(initOpts, gssapi.WithInitiatorCredential(initCred))
	if initiatorCB != nil {
		initOpts = append(initOpts, gssapi.WithInitiatorChannelBinding(&gssapi.ChannelBinding{Data: initiatorCB}))
	}
	initiator, err = initProvider.InitSecContext(acceptorName, initOpts...)
	require.NoError(t, err)

	acceptProvider := NewProvider()
	acceptCred, err := acceptProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageAcceptOnly, nil)
	require.NoError(t, err)
	WithRadiusClient(acceptCred, newRadius(emsk[keys.EAPEMSKLen/2:]))

	var acceptOpts []gssapi.AcceptSecContextOption
	acceptOpts = append(acceptOpts, gssapi.WithAcceptorCredential(acceptCred))
	if acceptorCB != nil {
		acceptOpts = append(acceptOpts, gssapi.WithAcceptorChannelBinding(&gssapi.ChannelBinding{Data: acceptorCB}))
	}
	acceptor, err = acceptProvider.AcceptSecContext(acceptOpts...)
	require.NoError(t, err)

	return initiator, acceptor, emsk
}

// S1: happy path, followed by a Wrap/Unwrap and GetMIC/VerifyMIC round trip
// once the context is fully established.
func TestHandshakeEstablishesAndProtectsMessages(t *testing.T) {
	initiator, acceptor, _ := newHandshakePair(t, func(msk []byte) RadiusClient {
		return &acceptAllRadius{msk: msk}
	})

	var tok []byte
	var err error
	for round := 0; round < 10; round++ {
		tok, err = initiator.Continue(tok)
		require.NoError(t, err)
		if len(tok) == 0 && !initiator.ContinueNeeded() {
			break
		}

		tok, err = acceptor.Continue(tok)
		require.NoError(t, err)
		if !initiator.ContinueNeeded() && !acceptor.ContinueNeeded() {
			break
		}
	}

	require.False(t, initiator.ContinueNeeded())
	require.False(t, acceptor.ContinueNeeded())

	initInfo, err := initiator.Inquire()
	require.NoError(t, err)
	require.True(t, initInfo.FullyEstablished)
	require.True(t, initInfo.ProtectionReady)

	msg := []byte("protect me")
	wrapped, conf, err := initiator.Wrap(msg, true, 0)
	require.NoError(t, err)
	require.True(t, conf)

	unwrapped, _, _, err := acceptor.Unwrap(wrapped)
	require.NoError(t, err)
	require.Equal(t, msg, unwrapped)

	mic, err := acceptor.GetMIC(msg, 0)
	require.NoError(t, err)
	_, err = initiator.VerifyMIC(msg, mic)
	require.NoError(t, err)
}

// S5: a RADIUS Access-Reject must fail the handshake on both sides with a
// defective-credential error, not hang or silently succeed.
func TestHandshakeFailsOnRadiusReject(t *testing.T) {
	initiator, acceptor, _ := newHandshakePair(t, func([]byte) RadiusClient {
		return rejectingRadius{}
	})

	tok, err := initiator.Continue(nil)
	require.NoError(t, err)

	_, err = acceptor.Continue(tok)
	require.Error(t, err)
	require.True(t, errors.Is(err, gssapi.ErrDefectiveCredential))

	require.True(t, initiator.ContinueNeeded())
	require.True(t, acceptor.ContinueNeeded()) // neither side reaches ESTABLISHED after a reject
}

// S3: a truncated outer token must be rejected as defective, not panic or
// silently desync the state machine.
func TestContinueRejectsTruncatedOuterToken(t *testing.T) {
	_, acceptor, _ := newHandshakePair(t, func(msk []byte) RadiusClient {
		return &acceptAllRadius{msk: msk}
	})

	_, err := acceptor.Continue([]byte{0x60, 0x7f, 0x06})
	require.Error(t, err)
	require.True(t, errors.Is(err, gssapi.ErrDefectiveToken))
}

// S4: an unrecognized critical inner token inside an otherwise well-formed
// outer token must fail closed with CRIT_ITOK_UNAVAILABLE, even when every
// inner token the receiving state actually requires is present and valid.
// The acceptor establishes one round ahead of the initiator (its
// INITIATOR_EXTS handler both verifies the initiator's MIC and emits its
// own in the same call), so by the time it has produced its closing
// message the initiator is still waiting to process it -- the natural
// point to splice in a bogus critical token the initiator's handler has no
// reason to recognize.
func TestContinueRejectsUnknownCriticalInnerToken(t *testing.T) {
	initiator, acceptor, _ := newHandshakePair(t, func(msk []byte) RadiusClient {
		return &acceptAllRadius{msk: msk}
	})

	var tok []byte
	var err error
	for round := 0; round < 10; round++ {
		tok, err = initiator.Continue(tok)
		require.NoError(t, err)
		if !initiator.ContinueNeeded() {
			break
		}

		tok, err = acceptor.Continue(tok)
		require.NoError(t, err)
		if !acceptor.ContinueNeeded() {
			break
		}
	}
	require.False(t, acceptor.ContinueNeeded())
	require.True(t, initiator.ContinueNeeded())

	_, payload, derr := token.DecodeOuter(MechOID, tok)
	require.NoError(t, derr)
	inner, derr := token.DecodeInnerStream(payload)
	require.NoError(t, derr)

	const unknownCriticalKind uint32 = 0x7fffffff
	inner = append(inner, token.NewInner(unknownCriticalKind, true, []byte("mystery")))
	tampered := token.EncodeOuter(MechOID, token.TokTypeAcceptorContext, token.EncodeInnerStream(inner))

	_, err = initiator.Continue(tampered)
	require.Error(t, err)
	require.True(t, errors.Is(err, gssapi.ErrUnavailable))
}

// S2: mismatched channel bindings between initiator and acceptor must fail
// the handshake with BAD_BINDINGS, reported to both sides.
func TestHandshakeFailsOnChannelBindingMismatch(t *testing.T) {
	initiator, acceptor, _ := newHandshakePairCB(t, func(msk []byte) RadiusClient {
		return &acceptAllRadius{msk: msk}
	}, []byte("initiator-view-of-the-channel"), []byte("acceptor-view-of-the-channel"))

	tok, err := initiator.Continue(nil)
	require.NoError(t, err)

	tok, err = acceptor.Continue(tok)
	require.NoError(t, err)

	tok, err = initiator.Continue(tok)
	require.NoError(t, err)

	ctxErrTok, err := acceptor.Continue(tok)
	require.Error(t, err)
	require.True(t, errors.Is(err, gssapi.ErrBadBindings))
	require.True(t, acceptor.ContinueNeeded())

	_, err = initiator.Continue(ctxErrTok)
	require.Error(t, err)
	require.True(t, errors.Is(err, gssapi.ErrBadBindings))
}

// S6: an acceptor context exported mid-exchange (after it has derived its
// session key and answered the initiator's identity, but before it has
// verified the initiator's closing MIC) must, once imported into a fresh
// handle, process that same closing round identically to a context that
// was never exported at all.
func TestContinueAfterImportReproducesSameOutput(t *testing.T) {
	radiusFor := func(msk []byte) RadiusClient { return &acceptAllRadius{msk: msk} }

	initiator, acceptorBaseline, emsk := newHandshakePair(t, radiusFor)

	acceptProvider := NewProvider()
	acceptCred, err := acceptProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageAcceptOnly, nil)
	require.NoError(t, err)
	WithRadiusClient(acceptCred, radiusFor(emsk[keys.EAPEMSKLen/2:]))
	acceptorExported, err := acceptProvider.AcceptSecContext(gssapi.WithAcceptorCredential(acceptCred))
	require.NoError(t, err)

	o1, err := initiator.Continue(nil)
	require.NoError(t, err)

	o2Baseline, err := acceptorBaseline.Continue(o1)
	require.NoError(t, err)

	o2Exported, err := acceptorExported.Continue(o1)
	require.NoError(t, err)
	require.Equal(t, o2Baseline, o2Exported)
	require.True(t, acceptorExported.ContinueNeeded())

	o3, err := initiator.Continue(o2Baseline)
	require.NoError(t, err)

	blob, err := acceptorExported.Export()
	require.NoError(t, err)

	imported, err := acceptProvider.ImportSecContext(blob)
	require.NoError(t, err)

	o4Baseline, err := acceptorBaseline.Continue(o3)
	require.NoError(t, err)

	o4Imported, err := imported.Continue(o3)
	require.NoError(t, err)

	require.Equal(t, o4Baseline, o4Imported)
	require.False(t, imported.ContinueNeeded())
}
