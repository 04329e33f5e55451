package assistant

import (
	"testing"

	"github.com/poiesic/projectinbox/core"
	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want core.Intent
	}{
		{"UPDATE", core.IntentUpdate},
		{"update", core.IntentUpdate},
		{"  Update\n", core.IntentUpdate},
		{"I think this is an UPDATE request", core.IntentUpdate},
		{"EMAIL", core.IntentEmail},
		{"email.", core.IntentEmail},
		{"QUERY", core.IntentQuery},
		{"", core.IntentQuery},
		{"no idea", core.IntentQuery},
		{"UPDATE or EMAIL", core.IntentUpdate},
		{"EMAIL then UPDATE", core.IntentUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.raw))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Provide input.", UserMessage(ErrEmptyInput))
	assert.Equal(t, "Project ID required for updates.", UserMessage(ErrProjectIDRequired))
	assert.True(t, IsUserError(ErrNoRelevantProject))
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.lock("a")
	unlockB := k.lock("b")
	assert.Equal(t, 2, k.size())

	unlockA()
	assert.Equal(t, 1, k.size())
	unlockB()
	assert.Equal(t, 0, k.size())
}
