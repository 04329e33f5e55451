package reembed

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Add(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 25)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Add(10, 0)
	assert.Empty(t, buf.String(), "below the report interval")

	tracker.Add(20, 5)
	assert.Contains(t, buf.String(), "30/100")
	assert.Contains(t, buf.String(), "5 fresh")

	tracker.Add(70, 0)
	assert.Contains(t, buf.String(), "100/100")
	assert.Contains(t, buf.String(), "100.0%")

	assert.Greater(t, tracker.Elapsed(), time.Duration(0))
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Start()
	tracker.Add(15, 0)

	assert.Contains(t, buf.String(), "10/10")
	assert.NotContains(t, buf.String(), "15/10")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Add(75, 0)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100", "finish should set to total")
	assert.Contains(t, output, "100.0%", "finish should show 100%")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "0/0", "should handle zero total")
	assert.Contains(t, output, "0.0%", "should show 0%")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Add(50, 0)
	tracker.Finish()

	assert.Empty(t, buf.String(), "should not output before Start")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_InvalidInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 3, 0)

	tracker.Start()
	tracker.Add(1, 0)
	assert.Contains(t, buf.String(), "1/3")
}
