package retrieval

import (
	"context"
	"strings"

	"github.com/archestra-labs/memcore/internal/logger"
)

// SaveMemory implements the save_memory tool contract from spec.md §6.
func (c *Controller) SaveMemory(ctx context.Context, fact, category string) string {
	fact = strings.TrimSpace(fact)
	if fact == "" {
		return "ERROR: 'fact' is required."
	}
	if category == "" {
		category = "general"
	}

	id, err := c.store.SaveUserFact(ctx, fact, category)
	if err != nil {
		logger.Error("save_memory failed", "error", err)
		return "ERROR: " + err.Error()
	}

	c.bus.Publish("memory_saved", map[string]any{"id": id, "category": category})

	return "MEMORY_SAVED: " + id
}
