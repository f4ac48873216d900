package controller

import (
	"net/http"

	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/gin-gonic/gin"
)

// MustAuth returns the caller identity set by the auth middleware. A missing
// identity means the route was mounted without RequireAuth; respond 401 rather
// than panic.
func MustAuth(c *gin.Context) (auth.Context, bool) {
	actx, ok := auth.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	return actx, ok
}
