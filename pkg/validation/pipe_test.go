package validation

import (
	"errors"
	"testing"
)

var twoFieldSchema = &ObjectSchema{
	Fields: []Field{
		{Name: "firstName", Required: true, Rules: nameRules()},
		{Name: "lastName", Required: true, Rules: nameRules()},
	},
}

func TestTransformNilInput(t *testing.T) {
	_, err := Transform(twoFieldSchema, nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if err.Error() != "No data provided" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestTransformNilMapInput(t *testing.T) {
	// A decoded-but-empty body arrives as a nil map inside the any
	// interface; it must fail the same way as untyped nil.
	_, err := Transform(CreateUserSchema, (map[string]any)(nil))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for a nil map, got %v", err)
	}
}

func TestTransformCollectsAllIssues(t *testing.T) {
	_, err := Transform(twoFieldSchema, map[string]any{
		"firstName": "J",
		"lastName":  float64(123),
	})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if len(verr.Details) != 2 {
		t.Fatalf("expected 2 details, got %+v", verr.Details)
	}
	first, second := verr.Details[0], verr.Details[1]
	if first.Path != "firstName" || first.Code != CodeTooSmall {
		t.Fatalf("unexpected first detail: %+v", first)
	}
	if second.Path != "lastName" || second.Code != CodeInvalidType {
		t.Fatalf("unexpected second detail: %+v", second)
	}
}

func TestTransformMissingField(t *testing.T) {
	_, err := Transform(twoFieldSchema, map[string]any{"firstName": "John"})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if len(verr.Details) != 1 {
		t.Fatalf("expected a single detail, got %+v", verr.Details)
	}
	d := verr.Details[0]
	if d.Path != "lastName" || d.Code != CodeInvalidType || d.Message != "Required" {
		t.Fatalf("unexpected detail: %+v", d)
	}
}

func TestTransformDropsWholeObjectIssuesFromDetails(t *testing.T) {
	_, err := Transform(UpdateUserSchema, map[string]any{})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if len(verr.Details) != 0 {
		t.Fatalf("whole-object issues must not appear in details, got %+v", verr.Details)
	}
	if len(verr.Issues) != 1 {
		t.Fatalf("expected the raw issue to be kept, got %+v", verr.Issues)
	}
}

func TestTransformJointPathJoinsFieldNames(t *testing.T) {
	_, err := Transform(UpdateUserSchema, map[string]any{
		"password":       "Abcdef1!",
		"repeatPassword": "Abcdef2!",
	})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if len(verr.Details) != 1 || verr.Details[0].Path != "password, repeatPassword" {
		t.Fatalf("unexpected details: %+v", verr.Details)
	}
}

func TestTransformReturnsNormalizedValue(t *testing.T) {
	out, err := Transform(CreateUserSchema, validCreatePayload())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if out["role"] != RoleUser {
		t.Fatalf("expected defaulted role, got %v", out["role"])
	}
	if out["firstName"] != "John" {
		t.Fatalf("expected firstName to round-trip, got %v", out["firstName"])
	}
}

func TestTransformRejectsNonObject(t *testing.T) {
	_, err := Transform(twoFieldSchema, "just a string")

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if len(verr.Details) != 0 || len(verr.Issues) != 1 {
		t.Fatalf("expected one whole-object issue and no details, got %+v", verr)
	}
}
