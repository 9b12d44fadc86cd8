// Package handler exposes the lead center over HTTP.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/pkg/auth"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// currentUserID extracts the authenticated user ID from the request
// context. The auth middleware stores the subject as a decimal string.
func currentUserID(c *gin.Context) (uint64, bool) {
	subject := auth.SubjectFromContext(c.Request.Context())
	if subject == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// requireUser writes the unauthorized response when no subject is
// present.
func requireUser(c *gin.Context) (uint64, bool) {
	id, ok := currentUserID(c)
	if !ok {
		response.WriteResponse(c, errors.ErrUnauthorized, nil)
	}
	return id, ok
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.WriteResponse(c, errors.ErrInvalidParam.WithMessagef("invalid %s", name), nil)
		return 0, false
	}
	return id, true
}

// pagination parses the page and page_size query parameters with
// sensible bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, 10
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}
