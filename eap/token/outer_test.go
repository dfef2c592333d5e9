package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOID = []byte{0x2b, 0x06, 0x01, 0x05, 0x05, 0x0f} // arbitrary test OID

func TestOuterRoundTrip(t *testing.T) {
	payload := []byte("inner-token-stream")
	enc := EncodeOuter(testOID, TokTypeInitiatorContext, payload)

	tokType, got, err := DecodeOuter(testOID, enc)
	require.NoError(t, err)
	assert.Equal(t, TokTypeInitiatorContext, tokType)
	assert.Equal(t, payload, got)
}

func TestOuterRoundTripLongPayload(t *testing.T) {
	// exercise the multi-byte DER length branch
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	enc := EncodeOuter(testOID, TokTypeWrap, payload)

	tokType, got, err := DecodeOuter(testOID, enc)
	require.NoError(t, err)
	assert.Equal(t, TokTypeWrap, tokType)
	assert.Equal(t, payload, got)
}

func TestDecodeOuterBadHeader(t *testing.T) {
	_, _, err := DecodeOuter(testOID, []byte{0x61, 0x00})
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestDecodeOuterTruncated(t *testing.T) {
	enc := EncodeOuter(testOID, TokTypeMIC, []byte("hello"))
	_, _, err := DecodeOuter(testOID, enc[:len(enc)-3])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeOuterWrongMech(t *testing.T) {
	enc := EncodeOuter(testOID, TokTypeMIC, []byte("hello"))
	other := []byte{0x2a, 0x03, 0x04}
	_, _, err := DecodeOuter(other, enc)
	assert.ErrorIs(t, err, ErrWrongMech)
}

func TestTokTypeName(t *testing.T) {
	assert.Equal(t, "initiator-context", TokTypeName(TokTypeInitiatorContext))
	assert.Equal(t, "wrap", TokTypeName(TokTypeWrap))
	assert.Contains(t, TokTypeName(0x9999), "0x9999")
}

func TestSubHeaderBytes(t *testing.T) {
	hdr := SubHeaderBytes(testOID, TokTypeAcceptorContext)
	assert.Equal(t, byte(0x06), hdr[0])
	assert.Equal(t, byte(len(testOID)), hdr[1])
	assert.Equal(t, testOID, hdr[2:2+len(testOID)])
}
