package ingest

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gvone/gvone-api/internal/pkg/response"
	apperrors "github.com/gvone/gvone-api/pkg/errors"
)

// Runner is the service surface the handler needs
type Runner interface {
	Run(ctx context.Context, channelID string) (*RunSummary, error)
}

type Handler struct {
	service Runner
}

func NewHandler(service Runner) *Handler {
	return &Handler{service: service}
}

// @Summary Trigger an ingest run
// @Description Poll channel RSS feeds and store new items. Body may name a single channel; an empty body runs every channel.
// @Tags ingest
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param request body RunRequest false "Run scope"
// @Success 200 {object} response.APIResponse{data=RunSummary}
// @Router /ingest/run [post]
func (h *Handler) Run(c *gin.Context) {
	var req RunRequest
	// An empty or absent body means "run everything"
	_ = c.ShouldBindJSON(&req)

	summary, err := h.service.Run(c.Request.Context(), req.ChannelID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Channel not found")
			return
		}
		_ = c.Error(err)
		response.InternalError(c, "Ingest run failed.", err)
		return
	}

	response.SuccessData(c, "Ingest run completed.", summary)
}
