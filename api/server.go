package api

import (
	"github.com/gin-gonic/gin"

	"tradewire/pipeline"
)

// Components reports which optional collaborators are wired, for /api/health.
type Components struct {
	Redis bool `json:"redis"`
	Kafka bool `json:"kafka"`
	S3    bool `json:"s3"`
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(p *pipeline.Pipeline, components Components) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterAggregateRoutes(r, p)
	RegisterTranslateRoutes(r, p)
	RegisterHealthRoutes(r, components)
	return r
}
