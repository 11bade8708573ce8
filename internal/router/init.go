package router

import (
	userapp "github.com/dityaaw/user-service/internal/application"
	"github.com/dityaaw/user-service/internal/container"
	repouser "github.com/dityaaw/user-service/internal/domain/repository"
	pginfra "github.com/dityaaw/user-service/internal/infrastructure/postgres"
	handlers "github.com/dityaaw/user-service/internal/interface/http"
	"github.com/dityaaw/user-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetLogger(),
		container.GetConfig().Domain,
	)

	handler := handlers.NewUserHandler(
		service,
		container.GetAvatars(),
		container.GetLogger(),
	)

	return UserModuleDeps{Repo: repo, Service: service, Handler: handler}
}

// InitModules wires all feature modules into the registry. Called once
// during startup.
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
}
