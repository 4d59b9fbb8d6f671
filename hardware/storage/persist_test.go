package storage

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ckos/ckos/log2"
)

type counterState struct{ n uint32 }

func (c *counterState) MarshalBinary() ([]byte, error) {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, c.n)
	return b, nil
}

func (c *counterState) UnmarshalBinary(b []byte) error {
	if len(b) < 4 {
		return io.ErrUnexpectedEOF
	}
	c.n = binary.BigEndian.Uint32(b)
	return nil
}

func TestPersistRoundTrip(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)

	src := &counterState{n: 42}
	var p Persist
	p.InitMem("counter", src, log)
	require.NoError(t, p.Store())

	src.n = 0
	require.NoError(t, p.Load())
	assert.Equal(t, uint32(42), src.n)
}

func TestPersistDisabled(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)

	var p Persist
	require.NoError(t, p.Init("counter", nil, "", false, log))
	assert.NoError(t, p.Load())
	assert.NoError(t, p.Store())
}

func TestPersistLoadEmpty(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)

	src := &counterState{n: 7}
	var p Persist
	p.InitMem("counter", src, log)
	require.NoError(t, p.Load())
	// nothing stored yet, target untouched
	assert.Equal(t, uint32(7), src.n)
}
