package auth

import "github.com/gin-gonic/gin"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Context identifies the caller for the duration of one request. It is passed
// explicitly into every service call; there is no ambient session singleton.
type Context struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

func (c Context) Role() string {
	if c.IsAdmin {
		return RoleAdmin
	}
	return RoleStudent
}

const contextKey = "auth_context"

// FromGin extracts the Context set by RequireAuth.
func FromGin(c *gin.Context) (Context, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Context{}, false
	}
	actx, ok := v.(Context)
	return actx, ok
}

func setContext(c *gin.Context, actx Context) {
	c.Set(contextKey, actx)
}
