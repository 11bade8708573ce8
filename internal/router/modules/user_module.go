package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/dityaaw/user-service/internal/interface/http"
)

// UserModule wires the user lifecycle routes:
// POST   /api/users/create
// GET    /api/users
// GET    /api/users/user?email=...
// PATCH  /api/users/update/:id
// DELETE /api/users/remove/:id
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		// TODO: restrict create/update/remove to ADMIN once a role guard
		// middleware exists.
		users.POST("/create", m.Handler.Create)
		users.GET("", m.Handler.FindAll)
		users.GET("/user", m.Handler.FindOne)
		users.PATCH("/update/:id", m.Handler.Update)
		users.DELETE("/remove/:id", m.Handler.Remove)
	}
}
