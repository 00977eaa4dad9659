package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gvone/gvone-api/internal/pkg/pagination"
)

// APIResponse is the single payload shape for every endpoint. Business
// rejections (duplicate report, self report) ride on HTTP 200 with
// success=false; only transport-level problems use non-200 codes.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a 200 OK with success=true
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
	})
}

// SuccessData sends a 200 OK with success=true and a data payload
func SuccessData(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Rejected sends a 200 OK with success=false. Used for expected
// business rejections that are not transport errors.
func Rejected(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: false,
		Message: message,
	})
}

// InternalError sends a 200 OK with success=false and a diagnostic
// string, mirroring the function-style contract where the transport
// never surfaces engine faults as HTTP errors.
func InternalError(c *gin.Context, message string, err error) {
	body := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// Paginated sends a 200 OK list response with pagination metadata
func Paginated(c *gin.Context, items interface{}, p *pagination.Pagination) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "ok",
		Data: gin.H{
			"items":      items,
			"pagination": p,
		},
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
	})
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, APIResponse{
		Success: false,
		Message: message,
	})
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, APIResponse{
		Success: false,
		Message: message,
	})
}
