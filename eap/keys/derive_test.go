package keys

import (
	"testing"

	"github.com/jcmturner/gokrb5/v8/iana/etypeID"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEMSK() []byte {
	emsk := make([]byte, EAPEMSKLen)
	for i := range emsk {
		emsk[i] = byte(i)
	}
	return emsk
}

func TestDeriveFromEMSKAndMPPEKeyAgree(t *testing.T) {
	emsk := fakeEMSK()
	mppeSendKey := emsk[EAPEMSKLen/2:]

	fromEMSK, err := DeriveFromEMSK(emsk, etypeID.AES256_CTS_HMAC_SHA1_96)
	require.NoError(t, err)

	fromMPPE, err := DeriveFromMPPESendKey(mppeSendKey, etypeID.AES256_CTS_HMAC_SHA1_96)
	require.NoError(t, err)

	assert.Equal(t, fromEMSK.Value, fromMPPE.Value)
	assert.Equal(t, fromEMSK.ChecksumType, fromMPPE.ChecksumType)
}

func TestDeriveFromEMSKTooShort(t *testing.T) {
	_, err := DeriveFromEMSK(make([]byte, 10), etypeID.AES256_CTS_HMAC_SHA1_96)
	assert.ErrorIs(t, err, ErrKeyTooShort)
}

func TestDeriveFromEMSKEmpty(t *testing.T) {
	_, err := DeriveFromEMSK(nil, etypeID.AES256_CTS_HMAC_SHA1_96)
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestDeriveFromMPPESendKeyEmpty(t *testing.T) {
	_, err := DeriveFromMPPESendKey(nil, etypeID.AES256_CTS_HMAC_SHA1_96)
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestDeriveUnsupportedEnctype(t *testing.T) {
	_, err := DeriveFromEMSK(fakeEMSK(), 9999)
	assert.Error(t, err)
}

func TestDeriveAES128(t *testing.T) {
	key, err := DeriveFromEMSK(fakeEMSK(), etypeID.AES128_CTS_HMAC_SHA1_96)
	require.NoError(t, err)
	assert.Equal(t, int32(etypeID.AES128_CTS_HMAC_SHA1_96), key.EncType)
	assert.NotEmpty(t, key.Value)
}
