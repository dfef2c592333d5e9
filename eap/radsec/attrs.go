// Package radsec is the acceptor-side RADIUS/RadSec sub-protocol used by
// the GSS-EAP acceptor state machine (C7) to carry EAP messages to an AAA
// server and retrieve the MS-MPPE keying material and identity AVPs it
// returns.
package radsec

import "layeh.com/radius"

// Standard RADIUS attribute types used directly (RFC 2865 / RFC 3579).
const (
	AttrUserName   radius.Type = 1
	AttrState      radius.Type = 24
	AttrVendor     radius.Type = 26
	AttrEAPMessage radius.Type = 79
)

// Vendor-specific attribute numbers carried inside AttrVendor (RFC 2548 /
// the moonshot UKERNA private enterprise attributes), matching the
// original mech_eap's util_radius.h.
const (
	VendorPECMicrosoft uint32 = 311   // RFC 2548
	VendorPECUKERNA    uint32 = 25622

	PWMSMPPESendKey uint8 = 16
	PWMSMPPERecvKey uint8 = 17

	PWGSSAcceptorServiceName     uint8 = 128
	PWGSSAcceptorHostName        uint8 = 129
	PWGSSAcceptorServiceSpecific uint8 = 130
	PWGSSAcceptorRealmName       uint8 = 131
)

// Code aliases for the RADIUS codes this sub-protocol dispatches on.
const (
	CodeAccessRequest   = radius.CodeAccessRequest
	CodeAccessAccept    = radius.CodeAccessAccept
	CodeAccessReject    = radius.CodeAccessReject
	CodeAccessChallenge = radius.CodeAccessChallenge
)
