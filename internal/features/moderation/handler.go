package moderation

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gvone/gvone-api/internal/pkg/pagination"
	"github.com/gvone/gvone-api/internal/pkg/response"
	apperrors "github.com/gvone/gvone-api/pkg/errors"
)

// Submitter is the service surface the handler needs
type Submitter interface {
	SubmitReport(ctx context.Context, req *SubmitReportRequest) (*CascadeResult, error)
	ListReports(ctx context.Context, postID string, offset, limit int) ([]Report, int64, error)
}

type Handler struct {
	service Submitter
}

func NewHandler(service Submitter) *Handler {
	return &Handler{service: service}
}

// @Summary Report a post
// @Description Submit a report against a post. Duplicate and self reports are rejected with success=false; the response is always HTTP 200 with a structured body.
// @Tags moderation
// @Accept json
// @Produce json
// @Param request body SubmitReportRequest true "Report details"
// @Success 200 {object} response.APIResponse
// @Router /reports [post]
func (h *Handler) SubmitReport(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Missing required parameters.")
		return
	}

	_, err := h.service.SubmitReport(c.Request.Context(), &req)
	switch {
	case err == nil:
		response.Success(c, "Report submitted successfully.")
	case errors.Is(err, apperrors.ErrDuplicateReport):
		response.Rejected(c, "You have already reported this post.")
	case errors.Is(err, apperrors.ErrSelfReport):
		response.Rejected(c, "You cannot report your own post.")
	default:
		// NotFound and store failures both land here: the engine does
		// not retry, the caller re-invokes with the same inputs.
		_ = c.Error(err)
		response.InternalError(c, "An error occurred processing the report.", err)
	}
}

// @Summary List reports
// @Description Paginated audit listing of the report ledger, optionally filtered by post.
// @Tags moderation
// @Produce json
// @Security ServiceToken
// @Param postId query string false "Filter by post ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.APIResponse{data=[]Report}
// @Router /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	page, limit := pagination.Parse(c.Query("page"), c.Query("limit"))
	postID := c.Query("postId")

	offset := (page - 1) * limit
	reports, total, err := h.service.ListReports(c.Request.Context(), postID, offset, limit)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c, "Failed to list reports.", err)
		return
	}

	if reports == nil {
		reports = []Report{}
	}

	response.Paginated(c, reports, pagination.New(page, limit, total))
}
