package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/config"
	"github.com/jonathan/seopilot/internal/db"
	"github.com/jonathan/seopilot/internal/types"
)

// fakeDB is an in-memory DBClient for exercising the user service.
type fakeDB struct {
	users map[uuid.UUID]*db.User
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	u := f.users[userID]
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func newTestUserService(fake *fakeDB) *UserService {
	// Minimum bcrypt cost keeps the tests fast.
	return NewUserService(fake, &config.PasswordConfig{BcryptCost: 4})
}

func TestUserService_Register(t *testing.T) {
	fake := newFakeDB()
	svc := newTestUserService(fake)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.True(t, user.PasswordSet)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &types.CreateUserRequest{
			Name:     "Other",
			Email:    "dana@example.com",
			Password: "hunter2hunter2",
		})
		require.Error(t, err)
		assert.IsType(t, &ErrEmailAlreadyExists{}, err)
	})
}

func TestUserService_Login(t *testing.T) {
	fake := newFakeDB()
	svc := newTestUserService(fake)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "wrong"})
		assert.IsType(t, &ErrInvalidCredentials{}, err)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
		assert.IsType(t, &ErrInvalidCredentials{}, err)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	fake := newFakeDB()
	svc := newTestUserService(fake)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "old-password-1",
	})
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, user.ID, "not-the-password", "new-password-1")
		assert.IsType(t, &ErrPasswordMismatch{}, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, uuid.New(), "old-password-1", "new-password-1")
		var notFound *access.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("successful change", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(ctx, user.ID, "old-password-1", "new-password-1"))

		_, err := svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "old-password-1"})
		assert.IsType(t, &ErrInvalidCredentials{}, err)

		_, err = svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "new-password-1"})
		assert.NoError(t, err)
	})
}
