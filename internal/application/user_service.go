package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dityaaw/user-service/internal/domain/entity"
	repo "github.com/dityaaw/user-service/internal/domain/repository"
	"github.com/dityaaw/user-service/pkg/helpers"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user already exists")
	ErrEmptyUpdate  = errors.New("nothing to update")
)

// Service mediates between validated payloads and the user store. It owns
// avatar URL construction and the password omission policy: records never
// leave this layer with the password field set.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
	Domain string // public base URL for uploaded avatars
}

func NewService(r repo.UserRepository, logger *logrus.Logger, domain string) *Service {
	return &Service{Repo: r, Logger: logger, Domain: domain}
}

// CreateUserInput is a create payload with transient fields
// (repeatPassword) already stripped by the caller.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      entity.Role
}

// UpdateUserInput is a partial update: nil fields were absent from the
// request. Transient fields (repeatPassword, oldPassword) are stripped by
// the caller.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *entity.Role
	Avatar    *string
}

// buildAvatarURL joins the configured public domain with an uploaded
// filename. An empty filename yields no avatar.
func buildAvatarURL(domain, filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimRight(domain, "/") + "/" + filename
}

// Create persists a new user; the caller has already checked that the
// email is unused. The returned record has the password omitted.
func (s *Service) Create(ctx context.Context, in CreateUserInput, avatarName string) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Role:      in.Role,
		Avatar:    buildAvatarURL(s.Domain, avatarName),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user created")
	return omitPassword(u), nil
}

// GetAllUsers returns every record with passwords omitted. No pagination,
// no filtering.
func (s *Service) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// FindOneByEmail returns the full record, password included, for internal
// use such as the duplicate-email check.
func (s *Service) FindOneByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// FindOneByID returns the record with the password omitted.
func (s *Service) FindOneByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return omitPassword(u), nil
}

// Update applies a partial update; only supplied fields change. The
// returned record has the password omitted.
func (s *Service) Update(ctx context.Context, id string, in UpdateUserInput, avatarName string) (*entity.User, error) {
	patch := entity.UserPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      in.Role,
		Avatar:    in.Avatar,
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}
	if url := buildAvatarURL(s.Domain, avatarName); url != "" {
		patch.Avatar = &url
	}
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	u, err := s.Repo.UpdatePartial(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.Logger.WithField("user_id", id).Info("user updated")
	return omitPassword(u), nil
}

// Remove hard-deletes the record and returns it with the password omitted.
func (s *Service) Remove(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": id, "email": u.Email}).Info("user removed")
	return omitPassword(u), nil
}

func omitPassword(u *entity.User) *entity.User {
	u.Password = ""
	return u
}
