// Package eap implements the GSS-EAP mechanism's context-establishment
// state machine: the federated bridge between an EAP method exchange, a
// RADIUS/RadSec AAA transaction, and a generic GSS-API security context
// (components C1-C9 of the mechanism design). It plugs into the root
// gssapi package as a Provider.
package eap

import (
	"sync"
	"time"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/radsec"
	"github.com/janetuk/moonshot/eap/seq"
	"github.com/janetuk/moonshot/eap/token"
)

// MechOID is the GSS-EAP mechanism's object identifier
// (1.3.6.1.5.5.15.1.1.17), matching gssapi.GSS_MECH_EAP.
var MechOID = []byte(gssapi.GSS_MECH_EAP.Oid())

// state is the bit-flag context-establishment state (spec §3 "State enum").
type state uint32

const (
	stateInitial        state = 1 << iota // 0x01
	stateAuthenticate                     // 0x02
	stateInitiatorExts                    // 0x04
	stateAcceptorExts                     // 0x08
	stateEstablished                      // 0x10
	stateReauthenticate                   // alternate branch from INITIAL
)

const stateAll = stateInitial | stateAuthenticate | stateInitiatorExts | stateAcceptorExts | stateEstablished | stateReauthenticate

func (s state) String() string {
	switch s {
	case stateInitial:
		return "INITIAL"
	case stateAuthenticate:
		return "AUTHENTICATE"
	case stateInitiatorExts:
		return "INITIATOR_EXTS"
	case stateAcceptorExts:
		return "ACCEPTOR_EXTS"
	case stateEstablished:
		return "ESTABLISHED"
	case stateReauthenticate:
		return "REAUTHENTICATE"
	default:
		return "UNKNOWN"
	}
}

// role identifies which side of the exchange a Context is driving.
type role int

const (
	roleInitiator role = iota
	roleAcceptor
)

// defaultGSSFlags is the advertised GSS flag set a freshly allocated
// context pre-sets, per §4.9.
const defaultGSSFlags = gssapi.ContextFlagInteg | gssapi.ContextFlagConf | gssapi.ContextFlagSequence | gssapi.ContextFlagReplay

// Context is the central GSS-EAP entity (spec §3 "Context"). One mutex
// guards the duration of any step call, matching the concurrency model in
// §5.
type Context struct {
	mu sync.Mutex

	role   role
	state  state
	flags  gssapi.ContextFlag // caller-requested
	gssFlags gssapi.ContextFlag // negotiated

	mechOID []byte

	key *keys.Key

	sendSeq *seq.State
	recvSeq *seq.State

	conversation token.Conversation

	expiry time.Time

	initiatorName gssapi.GssName
	acceptorName  gssapi.GssName

	cred *Credential

	extensionsSupported uint32 // bitmap negotiated via INITIATOR_EXTS/ACCEPTOR_EXTS

	channelBinding *gssapi.ChannelBinding

	established bool

	initiatorSub *initiatorSubstate
	acceptorSub  *acceptorSubstate
}

// initiatorSubstate holds the EAP-peer-owned state exclusive to the
// initiator side (spec §5 "Shared resources").
type initiatorSubstate struct {
	peer        EAPPeer
	eapDone     bool
	eapSuccess  bool
	lastEAPResp []byte
}

// acceptorSubstate holds the RADIUS-connection-owned state exclusive to
// the acceptor side.
type acceptorSubstate struct {
	radius        RadiusClient
	radiusCfg     radsec.Config
	attrs         radsec.AcceptorAttrs
	cachedState   []byte
	learnedName   string
	lastAVPs      *radsec.Result
}

// newContext allocates a zero-initialized context in state INITIAL with the
// default advertised GSS flag set (spec §4.9 "allocate").
func newContext(r role) *Context {
	return &Context{
		role:    r,
		state:   stateInitial,
		mechOID: MechOID,
		gssFlags: defaultGSSFlags,
	}
}

// ContinueNeeded reports whether this context still requires message
// exchanges to complete establishment.
func (c *Context) ContinueNeeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.established
}

// release tears down role-specific state and zeros key material (§4.9
// "release"). It does not lock; callers hold c.mu or are discarding c.
func (c *Context) release() {
	c.initiatorSub = nil
	c.acceptorSub = nil
	if c.key != nil {
		for i := range c.key.Value {
			c.key.Value[i] = 0
		}
		c.key = nil
	}
}

// Delete implements gssapi.SecContext.Delete.
func (c *Context) Delete() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.release()
	return nil, nil
}

// ProcessToken implements gssapi.SecContext.ProcessToken.
func (c *Context) ProcessToken([]byte) error {
	return nil
}

// ExpiresAt implements gssapi.SecContext.ExpiresAt.
func (c *Context) ExpiresAt() (*gssapi.GssLifetime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiry.IsZero() {
		return &gssapi.GssLifetime{IsIndefinite: true}, nil
	}

	return &gssapi.GssLifetime{
		IsExpired: time.Now().After(c.expiry),
		ExpiresAt: c.expiry,
	}, nil
}

// Inquire implements gssapi.SecContext.Inquire.
func (c *Context) Inquire() (*gssapi.SecContextInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &gssapi.SecContextInfo{
		InitiatorName:    c.initiatorName,
		AcceptorName:     c.acceptorName,
		Mech:             gssapi.GSS_MECH_EAP,
		Flags:            c.gssFlags,
		ExpiresAt:        gssapi.GssLifetime{IsIndefinite: c.expiry.IsZero(), ExpiresAt: c.expiry},
		LocallyInitiated: c.role == roleInitiator,
		FullyEstablished: c.established,
		ProtectionReady:  c.key != nil,
		Transferrable:    true,
	}, nil
}

// WrapSizeLimit implements gssapi.SecContext.WrapSizeLimit. Confidentiality
// adds one RFC-3961 confounder and block-pads the message; a conservative
// fixed overhead is subtracted since the concrete etype is only known once
// the key is derived.
func (c *Context) WrapSizeLimit(conf bool, outSizeMax uint, _ gssapi.QoP) (uint, error) {
	const overhead = 64
	if outSizeMax <= overhead {
		return 0, nil
	}
	return outSizeMax - overhead, nil
}
