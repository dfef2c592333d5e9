package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInnerStreamRoundTrip(t *testing.T) {
	toks := []Inner{
		NewInner(ITokEAPResp, true, []byte("eap-response-bytes")),
		NewInner(ITokGSSFlags, false, []byte{0x01}),
		NewInner(ITokInitiatorMIC, true, nil),
	}

	enc := EncodeInnerStream(toks)
	got, err := DecodeInnerStream(enc)
	require.NoError(t, err)
	require.Len(t, got, len(toks))

	for i, want := range toks {
		assert.Equal(t, want.Kind(), got[i].Kind())
		assert.Equal(t, want.Critical(), got[i].Critical())
		assert.Equal(t, want.Body, got[i].Body)
	}
}

func TestInnerCriticalFlag(t *testing.T) {
	crit := NewInner(ITokContextErr, true, nil)
	notCrit := NewInner(ITokContextErr, false, nil)

	assert.True(t, crit.Critical())
	assert.False(t, notCrit.Critical())
	assert.Equal(t, crit.Kind(), notCrit.Kind())
}

func TestDecodeInnerStreamTruncatedHeader(t *testing.T) {
	_, err := DecodeInnerStream([]byte{0x00, 0x00, 0x00})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeInnerStreamTruncatedBody(t *testing.T) {
	tok := NewInner(ITokEAPReq, false, []byte("0123456789"))
	enc := EncodeInnerStream([]Inner{tok})
	_, err := DecodeInnerStream(enc[:len(enc)-5])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeInnerStreamDuplicateKind(t *testing.T) {
	toks := []Inner{
		NewInner(ITokEAPReq, false, []byte("first")),
		NewInner(ITokEAPReq, true, []byte("second")),
	}
	enc := EncodeInnerStream(toks)
	_, err := DecodeInnerStream(enc)
	assert.ErrorIs(t, err, ErrDuplicateInner)
}

func TestFind(t *testing.T) {
	toks := []Inner{
		NewInner(ITokEAPReq, false, []byte("a")),
		NewInner(ITokAcceptorMIC, true, []byte("b")),
	}

	got, ok := Find(toks, ITokAcceptorMIC)
	require.True(t, ok)
	assert.Equal(t, []byte("b"), got.Body)

	_, ok = Find(toks, ITokReauthReq)
	assert.False(t, ok)
}
