// Package controllers contains the HTTP handlers for the Bashert API.
// Controllers bind and validate request payloads, delegate to the service
// layer, and translate service errors through the shared error middleware.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
)

func errUnauthenticated() error {
	return apperrors.ErrUnauthenticated
}

// idParam parses a path parameter as an int64 identifier. On failure it
// writes a 400 response and returns ok=false.
func idParam(ctx *gin.Context, name string) (int64, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
