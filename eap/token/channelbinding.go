package token

// MakeChannelBindingData builds the plaintext that gets wrapped (with
// confidentiality) and sent as the GSS_CHANNEL_BINDINGS inner token.
//
// Per the original mech_eap (gssEapMakeTokenChannelBindings), this is not
// just the caller-supplied application_data: it is the conversation log
// accumulated so far -- up to but excluding the channel-bindings inner
// token currently being built -- concatenated with the caller's
// application_data. convLenBeforeThisToken is the value of
// Conversation.Len() captured immediately before this inner token's header
// was appended.
func MakeChannelBindingData(conversation []byte, convLenBeforeThisToken int, applicationData []byte) []byte {
	if convLenBeforeThisToken > len(conversation) {
		convLenBeforeThisToken = len(conversation)
	}

	prefix := conversation[:convLenBeforeThisToken]
	out := make([]byte, 0, len(prefix)+len(applicationData))
	out = append(out, prefix...)
	out = append(out, applicationData...)
	return out
}
