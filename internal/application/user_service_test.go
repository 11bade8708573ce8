package application

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/dityaaw/user-service/internal/domain/entity"
	repo "github.com/dityaaw/user-service/internal/domain/repository"
)

type fakeRepo struct {
	users   map[string]*entity.User
	nextID  int
	creates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*entity.User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *entity.User) error {
	f.creates++
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = strconv.Itoa(f.nextID)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.users))
	for i := 1; i <= f.nextID; i++ {
		if u, ok := f.users[strconv.Itoa(i)]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) UpdatePartial(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(f.users, id)
	return u, nil
}

var _ repo.UserRepository = (*fakeRepo)(nil)

func newTestService(f *fakeRepo) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(f, logger, "http://cdn.test/uploads")
}

func createInput(email string) CreateUserInput {
	return CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  "Abcdef1!",
		Role:      entity.RoleUser,
	}
}

func TestCreateBuildsAvatarURL(t *testing.T) {
	svc := newTestService(newFakeRepo())

	u, err := svc.Create(context.Background(), createInput("john@example.com"), "photo.jpg")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Avatar != "http://cdn.test/uploads/photo.jpg" {
		t.Fatalf("unexpected avatar url: %q", u.Avatar)
	}
	if u.Password != "" {
		t.Fatal("password must be omitted from the returned record")
	}
	if u.ID == "" {
		t.Fatal("expected store-assigned id")
	}
}

func TestCreateWithoutAvatarLeavesFieldUnset(t *testing.T) {
	svc := newTestService(newFakeRepo())

	u, err := svc.Create(context.Background(), createInput("john@example.com"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Avatar != "" {
		t.Fatalf("expected no avatar, got %q", u.Avatar)
	}
}

func TestCreateHashesPassword(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)

	u, err := svc.Create(context.Background(), createInput("john@example.com"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored := f.users[u.ID]
	if stored.Password == "Abcdef1!" {
		t.Fatal("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Abcdef1!")); err != nil {
		t.Fatal("stored hash does not match the password")
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("john@example.com"), ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, createInput("john@example.com"), "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetAllUsersOmitsPasswordsAndIsIdempotent(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := svc.Create(ctx, createInput(email), ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	first, err := svc.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	second, err := svc.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 users twice, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Password != "" || second[i].Password != "" {
			t.Fatal("password must be absent from every listed record")
		}
		if first[i].ID != second[i].ID {
			t.Fatal("result sets differ between calls")
		}
	}
}

func TestFindOneByEmailReturnsFullRecord(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("john@example.com"), ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	u, err := svc.FindOneByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if u.Password == "" {
		t.Fatal("internal lookup should include the stored password field")
	}

	if _, err := svc.FindOneByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindOneByIDOmitsPassword(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("john@example.com"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u, err := svc.FindOneByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if u.Password != "" {
		t.Fatal("password must be omitted")
	}

	if _, err := svc.FindOneByID(ctx, "999"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateChangesOnlySuppliedFields(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("john@example.com"), "photo.jpg")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	firstName := "Jane"
	u, err := svc.Update(ctx, created.ID, UpdateUserInput{FirstName: &firstName}, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.FirstName != "Jane" {
		t.Fatalf("expected updated first name, got %q", u.FirstName)
	}
	if u.LastName != "Doe" || u.Email != "john@example.com" {
		t.Fatal("unsupplied fields must retain prior values")
	}
	if u.Avatar != "http://cdn.test/uploads/photo.jpg" {
		t.Fatalf("avatar should be untouched, got %q", u.Avatar)
	}
	if u.Password != "" {
		t.Fatal("password must be omitted")
	}
}

func TestUpdateReplacesAvatarWhenFileSupplied(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("john@example.com"), "old.jpg")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	firstName := "Jane"
	u, err := svc.Update(ctx, created.ID, UpdateUserInput{FirstName: &firstName}, "new.png")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Avatar != "http://cdn.test/uploads/new.png" {
		t.Fatalf("unexpected avatar: %q", u.Avatar)
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("john@example.com"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	next := "Zyxwvu9$"
	if _, err := svc.Update(ctx, created.ID, UpdateUserInput{Password: &next}, ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored := f.users[created.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(next)); err != nil {
		t.Fatal("stored hash does not match the new password")
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc := newTestService(newFakeRepo())

	firstName := "Jane"
	_, err := svc.Update(context.Background(), "999", UpdateUserInput{FirstName: &firstName}, "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRemoveReturnsRecordWithoutPassword(t *testing.T) {
	f := newFakeRepo()
	svc := newTestService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("john@example.com"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u, err := svc.Remove(ctx, created.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if u.Email != "john@example.com" {
		t.Fatalf("unexpected record: %+v", u)
	}
	if u.Password != "" {
		t.Fatal("password must be omitted from the removed record")
	}
	if len(f.users) != 0 {
		t.Fatal("record should be hard-deleted")
	}

	if _, err := svc.Remove(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
