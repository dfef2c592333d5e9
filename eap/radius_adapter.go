package eap

import (
	"context"

	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/janetuk/moonshot/internal/obslog"
)

var radiusLog = obslog.For("eap.radsec")

// RadiusClient abstracts the acceptor-side AAA transport (§4.7 "RADIUS
// sub-protocol") so the dispatcher can be driven in tests without a live
// RadSec server.
type RadiusClient interface {
	Exchange(ctx context.Context, userName string, eapMsg []byte, cachedState []byte) (*radsec.Result, error)
}

// liveRadiusClient is the production RadiusClient, backed by an actual
// RadSec/RADIUS exchange over UDP or TLS (layeh.com/radius).
type liveRadiusClient struct {
	cfg   radsec.Config
	attrs radsec.AcceptorAttrs
}

// NewRadiusClient returns a RadiusClient that performs real Access-Request/
// Access-Accept/Access-Challenge/Access-Reject round trips against cfg.Server.
func NewRadiusClient(cfg radsec.Config, attrs radsec.AcceptorAttrs) RadiusClient {
	return &liveRadiusClient{cfg: cfg, attrs: attrs}
}

func (c *liveRadiusClient) Exchange(ctx context.Context, userName string, eapMsg []byte, cachedState []byte) (*radsec.Result, error) {
	radiusLog.Debug("sending access-request", "server", c.cfg.Server, "user", userName, "eap_len", len(eapMsg))

	result, err := radsec.SendAccessRequest(ctx, c.cfg, userName, c.attrs, eapMsg, cachedState)
	if err != nil {
		radiusLog.Error("radius exchange failed", "server", c.cfg.Server, "err", err)
		return nil, err
	}

	radiusLog.Debug("received radius response", "server", c.cfg.Server, "code", result.Code)
	return result, nil
}
