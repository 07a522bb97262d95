// internal/writer/status_writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyWriter struct {
	*Recorder
	failNext bool
}

func (f *flakyWriter) SetIOState(sig Signal, on bool) error {
	if f.failNext {
		f.failNext = false
		return errors.New("write failed")
	}
	return f.Recorder.SetIOState(sig, on)
}

func TestEdgeSignal_WritesOnChangeOnly(t *testing.T) {
	rec := NewRecorder()
	edge := NewEdgeSignal(rec, IOFeedbackStateServerConnected)

	for _, v := range []bool{false, false, true, true, false, true} {
		_, err := edge.Set(v)
		require.NoError(t, err)
	}

	assert.Equal(t, []Write{
		{Signal: IOFeedbackStateServerConnected, On: true},
		{Signal: IOFeedbackStateServerConnected, On: false},
		{Signal: IOFeedbackStateServerConnected, On: true},
	}, rec.Writes())
}

func TestEdgeSignal_FailedWriteRetriedNextCall(t *testing.T) {
	fw := &flakyWriter{Recorder: NewRecorder(), failNext: true}
	edge := NewEdgeSignal(fw, IOFeedbackStateServerConnected)

	wrote, err := edge.Set(true)
	assert.True(t, wrote)
	assert.Error(t, err)
	assert.False(t, edge.Last(), "last value unchanged after failure")

	wrote, err = edge.Set(true)
	assert.True(t, wrote)
	assert.NoError(t, err)
	assert.True(t, edge.Last())
	assert.Len(t, fw.Writes(), 1)
}

func TestEdgeSignal_ForceAlwaysWrites(t *testing.T) {
	rec := NewRecorder()
	edge := NewEdgeSignal(rec, IOFeedbackStateServerConnected)

	require.NoError(t, edge.Force(false))
	require.NoError(t, edge.Force(true))

	wrote, err := edge.Set(true)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Len(t, rec.Writes(), 2)
}
