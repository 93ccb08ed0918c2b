package auth

import (
	"net/http"

	"server/activity"
	"server/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated and posseses the required roles
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []models.Role) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 || !user.HasRoles(required) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	// Before the handler, so the marker cookie can still make it into the
	// response headers
	activity.Touch(c, user.ID)
	handler(c, &user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...models.Role) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...models.Role) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, required ...models.Role) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}
