package log2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFilter(t *testing.T) {
	t.Parallel()

	sb := &strings.Builder{}
	log := NewWriter(sb, LInfo)
	log.SetFlags(0)
	log.Debugf("hidden %d", 1)
	log.Infof("visible %d", 2)
	log.Errorf("visible %d", 3)
	assert.Equal(t, "visible 2\nerror: visible 3\n", sb.String())

	sb.Reset()
	log.SetLevel(LDebug)
	log.Debug("now visible")
	assert.Equal(t, "debug: now visible\n", sb.String())
}

func TestNilSafe(t *testing.T) {
	t.Parallel()

	var log *Log
	log.SetLevel(LAll)
	log.SetFlags(0)
	log.Errorf("to nowhere")
	log.Infof("to nowhere")
	assert.False(t, log.Enabled(LError))
	assert.Nil(t, log.Clone(LDebug))
}

func TestErrorFunc(t *testing.T) {
	t.Parallel()

	log := NewTest(t, LDebug)
	captured := ""
	log.SetErrorFunc(func(format string, args ...interface{}) { captured = format })
	log.Error("lock jammed")
	assert.Equal(t, "lock jammed", captured)
}
