package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/dityaaw/user-service/internal/application"
	"github.com/dityaaw/user-service/internal/domain/entity"
	"github.com/dityaaw/user-service/pkg/response"
	"github.com/dityaaw/user-service/pkg/uploads"
	"github.com/dityaaw/user-service/pkg/validation"
)

// UserService is the lifecycle surface the handler needs.
type UserService interface {
	Create(ctx context.Context, in userapp.CreateUserInput, avatarName string) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	FindOneByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, in userapp.UpdateUserInput, avatarName string) (*entity.User, error)
	Remove(ctx context.Context, id string) (*entity.User, error)
}

type UserHandler struct {
	Svc     UserService
	Avatars *uploads.AvatarStore
	Logger  *logrus.Logger
}

func NewUserHandler(svc UserService, avatars *uploads.AvatarStore, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Avatars: avatars, Logger: logger}
}

func (h *UserHandler) Create(c *gin.Context) {
	body, err := requestBody(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	payload, err := validation.Transform(validation.CreateUserSchema, body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	email := strField(payload, "email")
	if _, err := h.Svc.FindOneByEmail(ctx, email); err == nil {
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
		return
	} else if !errors.Is(err, userapp.ErrUserNotFound) {
		h.internalError(c, "duplicate email check failed", err)
		return
	}

	avatarName, ok := h.saveAvatar(c)
	if !ok {
		return
	}

	u, err := h.Svc.Create(ctx, createInput(payload), avatarName)
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			// Concurrent create slipped past the pre-check; the unique
			// constraint is the backstop.
			response.Error(c, http.StatusBadRequest, "User already exists", nil)
			return
		}
		h.internalError(c, "create user failed", err)
		return
	}
	response.OK(c, http.StatusCreated, u)
}

func (h *UserHandler) FindAll(c *gin.Context) {
	users, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		h.internalError(c, "list users failed", err)
		return
	}
	response.OK(c, http.StatusOK, users)
}

func (h *UserHandler) FindOne(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, http.StatusBadRequest, "email query parameter is required", nil)
		return
	}
	u, err := h.Svc.FindOneByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.internalError(c, "find user failed", err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	body, err := requestBody(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	payload, err := validation.Transform(validation.UpdateUserSchema, body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	avatarName, ok := h.saveAvatar(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := h.Svc.Update(c.Request.Context(), id, updateInput(payload), avatarName); err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, userapp.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "User already exists", nil)
		case errors.Is(err, userapp.ErrEmptyUpdate):
			response.Error(c, http.StatusBadRequest, "At least one field must be provided", nil)
		default:
			h.internalError(c, "update user failed", err)
		}
		return
	}
	response.Message(c, http.StatusOK, "User updated")
}

func (h *UserHandler) Remove(c *gin.Context) {
	u, err := h.Svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.internalError(c, "remove user failed", err)
		return
	}
	response.Message(c, http.StatusOK, fmt.Sprintf("User %s removed", u.Email))
}

// saveAvatar stores an uploaded avatar file, if any, and reports whether
// the request may proceed. Upload failures respond directly.
func (h *UserHandler) saveAvatar(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		// no file attached
		return "", true
	}
	name, err := h.Avatars.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrUnsupportedType):
			response.Error(c, http.StatusBadRequest, "Unsupported file type", nil)
		case errors.Is(err, uploads.ErrTooLarge):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.internalError(c, "store avatar failed", err)
		}
		return "", false
	}
	return name, true
}

func (h *UserHandler) internalError(c *gin.Context, msg string, err error) {
	h.Logger.WithError(err).Error(msg)
	response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

// abortWithError defers rendering to the validation error translator
// middleware at the boundary.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
