package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradewire/pipeline"
	"tradewire/types"
)

// TranslateRequest is the payload accepted by POST /api/translate.
type TranslateRequest struct {
	Items      []*types.EnrichedItem `json:"items"`
	TargetLang string                `json:"target_lang"`
}

// RegisterTranslateRoutes registers translation-related routes.
func RegisterTranslateRoutes(r *gin.Engine, p *pipeline.Pipeline) {
	r.POST("/api/translate", handleTranslate(p))
}

func handleTranslate(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TranslateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.TargetLang == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_lang is required"})
			return
		}

		items := p.Translate(c.Request.Context(), req.Items, req.TargetLang)

		translated := 0
		for _, item := range items {
			if item.IsTranslated {
				translated++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"target_lang": req.TargetLang,
			"translated":  translated,
			"items":       items,
		})
	}
}
