package http

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/stretchr/testify/require"
)

// fakeRadiusClient implements eap.RadiusClient, immediately accepting any
// EAP identity response and handing back msk as the MS-MPPE-Send-Key, so
// the acceptor derives the same session key the initiator derived from
// its EMSK. It mirrors cmd/moonshot's demo command.
type fakeRadiusClient struct{ msk []byte }

func (f *fakeRadiusClient) Exchange(context.Context, string, []byte, []byte) (*radsec.Result, error) {
	return &radsec.Result{
		Code:          radsec.CodeAccessAccept,
		EAPMessage:    []byte{0x03, 0x00, 0x00, 0x04},
		MSMPPESendKey: f.msk,
	}, nil
}

// driveAcceptorNegotiate implements the server side of a (possibly
// multi-round) Negotiate exchange against a single persistent acceptor
// context: reply 401/WWW-Authenticate with a continuation token until
// establishment completes, then 200.
func driveAcceptorNegotiate(w http.ResponseWriter, r *http.Request, acceptor gssapi.SecContext) error {
	authzType, authzToken := parseAuthzHeader(&r.Header)
	if authzType != "Negotiate" || authzToken == "" {
		w.Header().Set("WWW-Authenticate", "Negotiate")
		w.WriteHeader(http.StatusUnauthorized)
		return nil
	}

	inTok, err := base64.StdEncoding.DecodeString(authzToken)
	if err != nil {
		return err
	}

	outTok, err := acceptor.Continue(inTok)
	if err != nil {
		return err
	}

	if acceptor.ContinueNeeded() {
		w.Header().Set("WWW-Authenticate", "Negotiate "+base64.StdEncoding.EncodeToString(outTok))
		w.WriteHeader(http.StatusUnauthorized)
		return nil
	}

	if len(outTok) > 0 {
		w.Header().Set("Authorization", "Negotiate "+base64.StdEncoding.EncodeToString(outTok))
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func TestClientDo(t *testing.T) {
	emsk := make([]byte, keys.EAPEMSKLen)
	_, err := rand.Read(emsk)
	require.NoError(t, err)
	msk := emsk[keys.EAPEMSKLen/2:]

	acceptProvider := eap.NewProvider()
	acceptCred, err := acceptProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageAcceptOnly, nil)
	require.NoError(t, err)
	eap.WithRadiusClient(acceptCred, &fakeRadiusClient{msk: msk})

	// The EAP/RADIUS exchange spans several HTTP round trips, so the
	// acceptor context must persist across requests from this one client.
	acceptor, err := acceptProvider.AcceptSecContext(gssapi.WithAcceptorCredential(acceptCred))
	require.NoError(t, err)
	defer acceptor.Delete()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := driveAcceptorNegotiate(w, r, acceptor); err != nil {
			t.Fatalf("server-side negotiate: %v", err)
		}
	}))
	defer ts.Close()

	initProvider := eap.NewProvider()
	initCred, err := initProvider.AcquireCredential(nil, []gssapi.GssMech{gssapi.GSS_MECH_EAP}, gssapi.CredUsageInitiateOnly, nil)
	require.NoError(t, err)
	eap.WithEAPPeer(initCred, func() (eap.EAPPeer, error) {
		return &eap.StaticPeer{NAI: "user@example.org", Emsk: emsk}, nil
	})

	client := NewClient(initProvider,
		WithCredential(initCred),
		WithNameType(gssapi.GSS_EAP_NT_NAI),
		WithSpnFunc(func(url.URL) string { return "acceptor@example.org" }),
	)

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
