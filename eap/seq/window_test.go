package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateInOrder(t *testing.T) {
	s := NewState(0, true, true)

	for i := uint64(0); i < 5; i++ {
		res, err := s.Check(i)
		require.NoError(t, err)
		assert.Equal(t, OK, res)
	}
	assert.Equal(t, uint64(4), s.Highest())
}

func TestStateDuplicateRejectedWhenReplayDetect(t *testing.T) {
	s := NewState(0, true, false)

	_, err := s.Check(0)
	require.NoError(t, err)
	_, err = s.Check(1)
	require.NoError(t, err)

	res, err := s.Check(1)
	assert.Equal(t, Duplicate, res)
	assert.ErrorIs(t, err, ErrReplay)
}

func TestStateDuplicateAllowedWhenReplayDetectOff(t *testing.T) {
	s := NewState(0, false, false)

	_, err := s.Check(0)
	require.NoError(t, err)
	res, err := s.Check(0)
	assert.Equal(t, Duplicate, res)
	assert.NoError(t, err)
}

func TestStateGapAndOutOfSequence(t *testing.T) {
	s := NewState(0, false, true)

	_, err := s.Check(0)
	require.NoError(t, err)

	res, err := s.Check(5)
	assert.Equal(t, Gap, res)
	assert.ErrorIs(t, err, ErrOutOfSequence)

	res, err = s.Check(3)
	assert.Equal(t, Unseq, res)
	assert.ErrorIs(t, err, ErrOutOfSequence)
}

func TestStateOldBeyondWindow(t *testing.T) {
	s := NewState(0, true, false)

	for i := uint64(0); i <= DefaultWindowSize+1; i++ {
		_, err := s.Check(i)
		require.NoError(t, err)
	}

	res, err := s.Check(0)
	assert.Equal(t, Old, res)
	assert.ErrorIs(t, err, ErrReplay)
}

func TestStateNextAndCurrent(t *testing.T) {
	s := NewState(10, false, false)

	assert.Equal(t, uint64(10), s.Current())
	assert.Equal(t, uint64(10), s.Next())
	assert.Equal(t, uint64(11), s.Current())
	assert.Equal(t, uint64(11), s.Next())
}
