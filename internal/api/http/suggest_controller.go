package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/taskroom/internal/suggest"
)

type SuggestController struct{}

func NewSuggestController() *SuggestController {
	return &SuggestController{}
}

// Suggest runs the dictionary heuristics over free-text input and returns
// proposed task fields. Pure computation, so it runs inline in the handler.
func (c *SuggestController) Suggest(ctx *gin.Context) {
	type request struct {
		Input    string   `json:"input" binding:"required"`
		Existing []string `json:"existing"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"suggestion": suggest.Suggest(req.Input, req.Existing)})
}
