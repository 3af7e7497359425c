package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradewire/pipeline"
	"tradewire/types"
)

// AggregateRequest is the payload accepted by POST /api/aggregate.
// Sources is optional; an empty list enables every source.
type AggregateRequest struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources"`
}

// RegisterAggregateRoutes registers aggregation-related routes.
func RegisterAggregateRoutes(r *gin.Engine, p *pipeline.Pipeline) {
	r.POST("/api/aggregate", handleAggregate(p))
}

func handleAggregate(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AggregateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		enabled, err := parseSourceKinds(req.Sources)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		items, err := p.Aggregate(c.Request.Context(), req.Query, enabled)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, types.ErrEmptyQuery) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"query":   req.Query,
			"sources": enabled,
			"count":   len(items),
			"items":   items,
		})
	}
}

// parseSourceKinds maps request source names to kinds. An empty request
// selects every known source.
func parseSourceKinds(names []string) ([]types.SourceKind, error) {
	if len(names) == 0 {
		return types.AllSourceKinds, nil
	}
	kinds := make([]types.SourceKind, 0, len(names))
	for _, name := range names {
		kind, ok := types.ParseSourceKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown source kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
