package fakeapi

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jask/bookkeep/internal/model"
)

var sheets = []string{"Vendors", "Wallets", "Expenses", "Payments", "Deposits"}

func (b *Backend) registerSync(g *gin.RouterGroup) {
	s := g.Group("/sync")

	s.GET("/status", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(c, 0, "success", gin.H{
			"pending_count": b.pendingTotal(),
			"last_sync":     b.lastSync,
			"settings":      b.settings,
		})
	})

	s.GET("/diff", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		details := map[string]model.ResourceDiff{}
		for _, name := range sheets {
			details[name] = model.ResourceDiff{Push: b.pending[name]}
		}
		respond(c, 0, "success", gin.H{
			"pending_push": b.pendingTotal(),
			"pending_pull": 0,
			"details":      details,
		})
	})

	s.POST("/settings", func(c *gin.Context) {
		var in model.SyncSettings
		if err := c.ShouldBindJSON(&in); err != nil {
			respond(c, 1000, "Invalid request body", nil)
			return
		}
		b.mu.Lock()
		b.settings = in
		b.mu.Unlock()
		respond(c, 0, "Settings updated", nil)
	})

	// The real backend pushes in the background; here the push completes
	// before the response is written.
	s.POST("/force", func(c *gin.Context) {
		b.mu.Lock()
		b.pending = map[string]int{}
		t := b.now().UTC().Format(time.RFC3339)
		b.lastSync = model.LastSync{Time: &t, Status: "Success"}
		b.mu.Unlock()
		respond(c, 0, "Full sync (Push + Pull) initiated in background", nil)
	})

	s.POST("/pull", func(c *gin.Context) {
		b.mu.Lock()
		t := b.now().UTC().Format(time.RFC3339)
		b.lastSync = model.LastSync{Time: &t, Status: "Success"}
		b.mu.Unlock()
		respond(c, 0, "Full pull initiated in background", nil)
	})
}

func (b *Backend) pendingTotal() int {
	total := 0
	for _, n := range b.pending {
		total += n
	}
	return total
}

// Pending reports queued changes per sheet, sorted by name.
func (b *Backend) Pending() []model.ResourceCount {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.ResourceCount, 0, len(b.pending))
	for name, n := range b.pending {
		out = append(out, model.ResourceCount{Name: name, ResourceDiff: model.ResourceDiff{Push: n}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
