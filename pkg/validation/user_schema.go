package validation

// User roles as they appear on the wire.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

func nameRules() []Rule {
	return []Rule{
		{Tag: "min=2", Code: CodeTooSmall, Message: "String must contain at least 2 character(s)"},
	}
}

func emailRules() []Rule {
	return []Rule{
		{Tag: "email", Code: CodeInvalidString, Message: "Invalid email"},
	}
}

// passwordRules checks length bounds and four independent character
// classes. Every rule is evaluated, so a weak password reports all of its
// violations at once.
func passwordRules() []Rule {
	return []Rule{
		{Tag: "min=6", Code: CodeTooSmall, Message: "Password should have minimum 6 characters"},
		{Tag: "max=20", Code: CodeTooBig, Message: "Password should have maximum 20 characters"},
		{Tag: "containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ", Code: CodeCustom, Message: "Password should have at least one uppercase letter"},
		{Tag: "containsany=abcdefghijklmnopqrstuvwxyz", Code: CodeCustom, Message: "Password should have at least one lowercase letter"},
		{Tag: "containsany=0123456789", Code: CodeCustom, Message: "Password should have at least one number"},
		{Tag: "containsany=!@#$%^&*", Code: CodeCustom, Message: "Password should have at least one special character"},
	}
}

func roleRules() []Rule {
	return []Rule{
		{Tag: "oneof=ADMIN USER", Code: CodeInvalidEnum, Message: "Invalid enum value. Expected 'ADMIN' | 'USER'"},
	}
}

// CreateUserSchema validates registration payloads. Role defaults to USER
// when absent.
var CreateUserSchema = &ObjectSchema{
	Fields: []Field{
		{Name: "firstName", Required: true, Rules: nameRules()},
		{Name: "lastName", Required: true, Rules: nameRules()},
		{Name: "email", Required: true, Rules: emailRules()},
		{Name: "password", Required: true, Rules: passwordRules()},
		{Name: "repeatPassword", Required: true, Rules: passwordRules()},
		{Name: "role", Rules: roleRules(), Default: RoleUser},
	},
	Refine: []RefineFunc{passwordsMatch},
}

// LoginSchema validates credentials; no confirmation field.
var LoginSchema = &ObjectSchema{
	Fields: []Field{
		{Name: "email", Required: true, Rules: emailRules()},
		{Name: "password", Required: true, Rules: passwordRules()},
	},
}

// UpdateUserSchema makes every create field optional and adds oldPassword
// and avatar. The refinements run in order and are not mutually exclusive.
var UpdateUserSchema = &ObjectSchema{
	Fields: []Field{
		{Name: "firstName", Rules: nameRules()},
		{Name: "lastName", Rules: nameRules()},
		{Name: "email", Rules: emailRules()},
		{Name: "password", Rules: passwordRules()},
		{Name: "repeatPassword", Rules: passwordRules()},
		{Name: "oldPassword", Rules: passwordRules()},
		{Name: "role", Rules: roleRules()},
		{Name: "avatar"},
	},
	Refine: []RefineFunc{
		atLeastOneField,
		passwordChangeComplete,
		repeatPasswordRequired,
		updatedPasswordsMatch,
	},
}

func passwordsMatch(obj map[string]any, add func(Issue)) {
	password, _ := obj["password"].(string)
	repeat, ok := obj["repeatPassword"].(string)
	if ok && repeat != password {
		add(Issue{Code: CodeCustom, Message: "The passwords did not match", Path: []string{"repeatPassword"}})
	}
}

var updatableFields = []string{"firstName", "lastName", "email", "password", "oldPassword", "repeatPassword"}

func atLeastOneField(obj map[string]any, add func(Issue)) {
	for _, name := range updatableFields {
		if _, ok := obj[name]; ok {
			return
		}
	}
	if _, ok := obj["avatar"]; ok {
		return
	}
	add(Issue{Code: CodeCustom, Message: "At least one field must be provided", Path: []string{}})
}

func passwordChangeComplete(obj map[string]any, add func(Issue)) {
	if _, ok := obj["oldPassword"]; !ok {
		return
	}
	_, hasPassword := obj["password"]
	_, hasRepeat := obj["repeatPassword"]
	if !hasPassword || !hasRepeat {
		add(Issue{
			Code:    CodeCustom,
			Message: "oldPassword, password and repeatPassword must all be provided to change the password",
			Path:    []string{"oldPassword", "password", "repeatPassword"},
		})
	}
}

func repeatPasswordRequired(obj map[string]any, add func(Issue)) {
	if _, ok := obj["password"]; !ok {
		return
	}
	if _, ok := obj["repeatPassword"]; !ok {
		add(Issue{Code: CodeCustom, Message: "Repeat password is required", Path: []string{"repeatPassword"}})
	}
}

func updatedPasswordsMatch(obj map[string]any, add func(Issue)) {
	repeat, ok := obj["repeatPassword"].(string)
	if !ok {
		return
	}
	if password, _ := obj["password"].(string); repeat != password {
		add(Issue{Code: CodeCustom, Message: "The passwords did not match", Path: []string{"password", "repeatPassword"}})
	}
}
