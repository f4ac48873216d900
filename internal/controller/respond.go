package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandleServiceError maps service errors onto the uniform HTTP taxonomy:
// 400 validation, 403 role/ownership/policy, 404 unknown or invisible
// resource, 409 duplicate finalize, 500 store failure.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrReviewNotAllowed):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Review not allowed for this exam"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, service.ErrExamNotAvailable):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrDuplicateSubmit), errors.Is(err, service.ErrAttemptFinalized):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
