package command

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDebug_HandleCommand_SendsDebugInfo(t *testing.T) {
	r := new(MockReplier)
	debugCmd := NewDebug("debug")
	assert.Equal(t, "debug", debugCmd.GetCommand())

	r.
		On(
			"SendReply",
			mock.Anything,
			"#x",
			"42",
			mock.MatchedBy(func(text string) bool {
				return strings.HasPrefix(text, "up ") &&
					strings.Contains(text, "heap") &&
					strings.Contains(text, "goroutines") &&
					!strings.Contains(text, "\n")
			}),
		).
		Return(nil)

	err := debugCmd.HandleCommand(t.Context(), newCommand(t, r, "!debug"))
	require.NoError(t, err)
	r.AssertExpectations(t)
}

func TestReadRuntimeStats(t *testing.T) {
	stats := readRuntimeStats()

	assert.Positive(t, stats.totalKB)
	assert.Positive(t, stats.goroutines)
	assert.GreaterOrEqual(t, stats.totalKB, stats.heapKB)
}

func TestRuntimeStatsString(t *testing.T) {
	stats := runtimeStats{totalKB: 2048, heapKB: 1024, stackKB: 64, goroutines: 7, uptime: 90 * time.Second}

	assert.True(t, strings.HasPrefix(stats.String(),
		"up 1m30s | mem 2048 KB (heap 1024 KB, stack 64 KB) | 7 goroutines | go"))
}
