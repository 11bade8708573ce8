package handlers

import (
	userapp "github.com/dityaaw/user-service/internal/application"
	"github.com/dityaaw/user-service/internal/domain/entity"
)

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func strPtr(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// createInput shapes a validated create payload for the service layer;
// repeatPassword is transient and deliberately not carried over.
func createInput(m map[string]any) userapp.CreateUserInput {
	return userapp.CreateUserInput{
		FirstName: strField(m, "firstName"),
		LastName:  strField(m, "lastName"),
		Email:     strField(m, "email"),
		Password:  strField(m, "password"),
		Role:      entity.Role(strField(m, "role")),
	}
}

// updateInput shapes a validated update payload; repeatPassword and
// oldPassword are transient and stripped here.
func updateInput(m map[string]any) userapp.UpdateUserInput {
	in := userapp.UpdateUserInput{
		FirstName: strPtr(m, "firstName"),
		LastName:  strPtr(m, "lastName"),
		Email:     strPtr(m, "email"),
		Password:  strPtr(m, "password"),
		Avatar:    strPtr(m, "avatar"),
	}
	if r := strPtr(m, "role"); r != nil {
		role := entity.Role(*r)
		in.Role = &role
	}
	return in
}
