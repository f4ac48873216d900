package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ctrls-academy/exam-platform/config"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Middleware resolves the session token into an auth.Context. The token only
// proves identity; the role always comes from a profiles lookup.
type Middleware struct {
	secret   []byte
	profiles repository.ProfileRepository
}

func NewMiddleware(cfg *config.Config, profiles repository.ProfileRepository) *Middleware {
	return &Middleware{secret: []byte(cfg.Auth.JWTSecret), profiles: profiles}
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// caller's Context for downstream handlers.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Msg("RequireAuth: token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		profile, err := m.profiles.FindByID(uint(userID))
		if err != nil {
			log.Warn().Err(err).Uint64("userID", userID).Msg("RequireAuth: no profile for token subject")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		setContext(c, Context{UserID: profile.ID, Email: profile.Email, IsAdmin: profile.IsAdmin})
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actx, ok := FromGin(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}
		if !actx.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader("Authorization")); strings.HasPrefix(v, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
	}
	if v, err := c.Cookie("access_token"); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
