package token

// Conversation is the append-only byte log of every outer token header and
// every inner token sent or received on a context, in exchange order (C2).
// It is the canonical MIC input: the MIC is computed over this log with the
// trailing MIC inner token's own framing stripped.
type Conversation struct {
	log []byte
}

// Record appends one or more byte slices atomically. The recorder never
// deduplicates; callers are responsible for calling it exactly once per
// logical event (one outer header, one inner token emitted, one inner
// token verified on receipt).
func (c *Conversation) Record(parts ...[]byte) {
	for _, p := range parts {
		c.log = append(c.log, p...)
	}
}

// Bytes returns the full conversation log accumulated so far.
func (c *Conversation) Bytes() []byte {
	return c.log
}

// Len reports the number of bytes recorded so far. Used to slice out a
// "before this inner token was appended" view for channel-binding wire
// encoding (see MakeChannelBindingData).
func (c *Conversation) Len() int {
	return len(c.log)
}

// MICInput returns the bytes that should be hashed/signed to produce or
// verify a MIC: the whole conversation log excluding the trailing bytes of
// the MIC inner token itself (which has not been computed yet when this is
// called to produce a MIC, and must be excluded when verifying one).
func (c *Conversation) MICInput(excludeTrailing int) []byte {
	if excludeTrailing <= 0 || excludeTrailing > len(c.log) {
		return c.log
	}
	return c.log[:len(c.log)-excludeTrailing]
}
