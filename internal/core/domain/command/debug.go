package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/metrics"
	"time"

	"chatbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

var startedAt = time.Now()

// Debug reports process health in one chat line.
type Debug struct {
	command string
}

func NewDebug(command string) *Debug {
	return &Debug{command: command}
}

func (d *Debug) GetCommand() string {
	return d.command
}

type runtimeStats struct {
	totalKB    uint64
	heapKB     uint64
	stackKB    uint64
	goroutines int
	uptime     time.Duration
}

func readRuntimeStats() runtimeStats {
	samples := []metrics.Sample{
		{Name: "/memory/classes/total:bytes"},
		{Name: "/memory/classes/heap/objects:bytes"},
		{Name: "/memory/classes/heap/stacks:bytes"},
	}
	metrics.Read(samples)

	kb := func(s metrics.Sample) uint64 {
		if s.Value.Kind() != metrics.KindUint64 {
			return 0
		}
		return s.Value.Uint64() / 1024
	}

	return runtimeStats{
		totalKB:    kb(samples[0]),
		heapKB:     kb(samples[1]),
		stackKB:    kb(samples[2]),
		goroutines: runtime.NumGoroutine(),
		uptime:     time.Since(startedAt).Truncate(time.Second),
	}
}

func (s runtimeStats) String() string {
	return fmt.Sprintf("up %s | mem %d KB (heap %d KB, stack %d KB) | %d goroutines | %s %s/%s",
		s.uptime, s.totalKB, s.heapKB, s.stackKB, s.goroutines,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func (d *Debug) HandleCommand(ctx context.Context, command domain.Command) error {
	stats := readRuntimeStats()

	log.Info().
		Str("messageId", command.MessageID).
		Str("channel", command.Channel).
		Str("command", d.GetCommand()).
		Uint64("totalKB", stats.totalKB).
		Uint64("heapKB", stats.heapKB).
		Uint64("stackKB", stats.stackKB).
		Int("goroutines", stats.goroutines).
		Dur("uptime", stats.uptime).
		Msg("handling request")

	return command.Reply(ctx, stats.String())
}
