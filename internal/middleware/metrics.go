package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/handlers"
	"github.com/verdantlab/gardenbot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		command := extractCommandName(c)
		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordCommand(command, status, time.Since(start))

		return err
	}
}

// extractCommandName keeps label cardinality bounded: callback data is cut at
// the action prefix and free-form text collapses to a single label.
func extractCommandName(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		if idx := strings.Index(cb.Data, ":"); idx > 0 {
			return cb.Data[:idx]
		}
		return cb.Data
	}

	if text := c.Text(); text != "" {
		if strings.HasPrefix(text, "/") {
			if idx := strings.IndexByte(text, ' '); idx > 0 {
				return text[:idx]
			}
			return text
		}
		return "text"
	}

	return "unknown"
}
