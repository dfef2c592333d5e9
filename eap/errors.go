package eap

import (
	"fmt"

	gssapi "github.com/janetuk/moonshot"
)

// minorCode enumerates the mechanism-specific minor status codes from the
// error taxonomy (spec §7). The numeric values are this rewrite's own;
// only the whitelist membership (see squash) is load-bearing.
type minorCode uint32

const (
	minorNone minorCode = iota

	// Framing
	minorTokTrunc
	minorBadTokHeader
	minorWrongMech
	minorWrongTokID
	minorDuplicateItok
	minorMissingRequiredItok
	minorCritItokUnavailable

	// Protocol
	minorWrongItok
	minorBadDirection
	minorReflect
	minorBadErrorToken

	// Crypto/key
	minorKeyUnavailable
	minorKeyTooShort

	// Auth
	minorRadiusAuthFailure
	minorUnknownRadiusCode
	minorPeerAuthFailure
	minorMissingEAPRequest
	minorBindingsMismatch

	// Lifecycle
	minorContextEstablished
	minorContextExpired
	minorCredUsageMismatch
	minorCredMechMismatch
	minorNoAcceptorName

	// Resource
	minorRadsecContextFailure
	minorGenericRadiusError
)

// wireMinorWhitelist is the set of minor codes the acceptor is willing to
// place verbatim into an outbound CONTEXT_ERR token (§7 "Propagation").
// Framing, protocol, and the small set of auth-related kinds are
// whitelisted; everything RADIUS-internal collapses to
// minorGenericRadiusError; anything else is suppressed.
var wireMinorWhitelist = map[minorCode]bool{
	minorTokTrunc:            true,
	minorBadTokHeader:        true,
	minorWrongMech:           true,
	minorWrongTokID:          true,
	minorDuplicateItok:       true,
	minorMissingRequiredItok: true,
	minorCritItokUnavailable: true,
	minorWrongItok:           true,
	minorBadDirection:        true,
	minorReflect:             true,
	minorBadErrorToken:       true,
	minorRadiusAuthFailure:   true,
	minorUnknownRadiusCode:   true,
	minorPeerAuthFailure:     true,
	minorMissingEAPRequest:   true,
	minorBindingsMismatch:    true,
}

func isRadiusInternal(m minorCode) bool {
	switch m {
	case minorRadsecContextFailure, minorGenericRadiusError:
		return true
	}
	return false
}

// wireMajor is this mechanism's own on-the-wire major status classification
// for a CONTEXT_ERR inner token. It is independent of gssapi's
// FatalErrorCode (whose enumerators are unexported and so cannot be
// reconstructed outside the gssapi package); the acceptor/initiator map
// between the two at the point a CONTEXT_ERR token is built or parsed.
type wireMajor uint32

const (
	wireMajorFailure wireMajor = iota
	wireMajorDefectiveToken
	wireMajorDefectiveCredential
	wireMajorBadBindings
	wireMajorUnavailable
	wireMajorBadMech
	wireMajorContextExpired
)

// smError is the error type handlers and the dispatcher return. Major
// wraps one of the gssapi.Err* sentinels so callers can use errors.Is
// against the public status surface; minor carries the mechanism-specific
// detail used only for the CONTEXT_ERR wire whitelist.
type smError struct {
	major error
	minor minorCode
	msg   string
}

func (e *smError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("%s: %s", e.major, e.msg)
	}
	return e.major.Error()
}

func (e *smError) Unwrap() error { return e.major }

func newErr(major error, minor minorCode, format string, args ...any) *smError {
	return &smError{major: major, minor: minor, msg: fmt.Sprintf(format, args...)}
}

func wireMajorFor(major error) wireMajor {
	switch major {
	case gssapi.ErrDefectiveToken:
		return wireMajorDefectiveToken
	case gssapi.ErrDefectiveCredential:
		return wireMajorDefectiveCredential
	case gssapi.ErrBadBindings:
		return wireMajorBadBindings
	case gssapi.ErrUnavailable:
		return wireMajorUnavailable
	case gssapi.ErrBadMech:
		return wireMajorBadMech
	case gssapi.ErrContextExpired:
		return wireMajorContextExpired
	default:
		return wireMajorFailure
	}
}

func majorForWire(w wireMajor) error {
	switch w {
	case wireMajorDefectiveToken:
		return gssapi.ErrDefectiveToken
	case wireMajorDefectiveCredential:
		return gssapi.ErrDefectiveCredential
	case wireMajorBadBindings:
		return gssapi.ErrBadBindings
	case wireMajorUnavailable:
		return gssapi.ErrUnavailable
	case wireMajorBadMech:
		return gssapi.ErrBadMech
	case wireMajorContextExpired:
		return gssapi.ErrContextExpired
	default:
		return gssapi.ErrFailure
	}
}

// squash implements recordErrorToken's whitelist rule: wire/auth minor
// codes pass through unchanged, RADIUS-internal codes collapse to a single
// generic code, and anything else is suppressed entirely (minor zeroed) to
// avoid leaking implementation detail to the peer. The major code is
// always preserved -- only the minor detail is subject to the whitelist.
func squash(e *smError) (wireMajor, minorCode) {
	wm := wireMajorFor(e.major)

	if wireMinorWhitelist[e.minor] {
		return wm, e.minor
	}
	if isRadiusInternal(e.minor) {
		return wm, minorGenericRadiusError
	}
	return wm, minorNone
}
