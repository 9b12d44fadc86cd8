// Package response provides unified API response structures.
// All HTTP endpoints return this format so clients can rely on one
// envelope shape.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// Response is the unified API response structure.
type Response struct {
	// Code is the business error code (0 = success)
	Code int `json:"code"`

	// Message is a human-readable message
	Message string `json:"message"`

	// Data contains the response payload (nil for errors)
	Data interface{} `json:"data,omitempty"`

	// RequestID is the unique request identifier for tracing
	RequestID string `json:"request_id,omitempty"`
}

// PageData represents paginated data.
type PageData struct {
	// List contains the data items
	List interface{} `json:"list"`

	// Total is the total number of items
	Total int64 `json:"total"`

	// Page is the current page number (1-based)
	Page int `json:"page"`

	// PageSize is the number of items per page
	PageSize int `json:"page_size"`
}

// Success creates a successful response with data.
func Success(data interface{}) *Response {
	return &Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// Err creates an error response from an Errno.
func Err(e *errors.Errno) *Response {
	if e == nil {
		return Success(nil)
	}
	return &Response{
		Code:    e.Code,
		Message: e.MessageEN,
	}
}

// Page creates a paginated response.
func Page(list interface{}, total int64, page, pageSize int) *Response {
	return Success(&PageData{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// HTTPStatus returns the HTTP status code for this response, resolved
// through the errno registry with a category-based fallback.
func (r *Response) HTTPStatus() int {
	if r.Code == 0 {
		return http.StatusOK
	}
	if e, ok := errors.Lookup(r.Code); ok {
		return e.HTTPStatus()
	}
	switch errors.GetCategory(r.Code) {
	case errors.CategoryRequest:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryPermission:
		return http.StatusForbidden
	case errors.CategoryResource:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case errors.CategoryTimeout:
		return http.StatusGatewayTimeout
	case errors.CategoryNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteResponse writes a success or error envelope to the gin context.
// Any error is converted through the errno system first.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	var resp *Response
	if err != nil {
		resp = Err(errors.FromError(err))
	} else {
		resp = Success(data)
	}
	if id := c.GetString("X-Request-ID"); id != "" {
		resp.RequestID = id
	}
	c.JSON(resp.HTTPStatus(), resp)
}

// WritePage writes a paginated success envelope.
func WritePage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	resp := Page(list, total, page, pageSize)
	if id := c.GetString("X-Request-ID"); id != "" {
		resp.RequestID = id
	}
	c.JSON(http.StatusOK, resp)
}
