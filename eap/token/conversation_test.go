package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationRecordAndBytes(t *testing.T) {
	var c Conversation

	c.Record([]byte("abc"), []byte("def"))
	assert.Equal(t, []byte("abcdef"), c.Bytes())
	assert.Equal(t, 6, c.Len())

	c.Record([]byte("ghi"))
	assert.Equal(t, []byte("abcdefghi"), c.Bytes())
}

func TestConversationMICInput(t *testing.T) {
	var c Conversation
	c.Record([]byte("header"))
	before := c.Len()

	mic := NewInner(ITokInitiatorMIC, true, nil)
	c.Record(EncodeInnerStream([]Inner{mic}))

	assert.Equal(t, c.Bytes()[:before], c.MICInput(mic.Encoded()))
}

func TestConversationMICInputOutOfRange(t *testing.T) {
	var c Conversation
	c.Record([]byte("short"))

	assert.Equal(t, c.Bytes(), c.MICInput(0))
	assert.Equal(t, c.Bytes(), c.MICInput(1000))
}
