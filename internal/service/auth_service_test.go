package service_test

import (
	"context"
	"testing"

	"github.com/Legeek117/projet-stock/internal/config"
	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"
	"github.com/Legeek117/projet-stock/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func buildAuthSvc() (service.AuthService, *stubUserRepo, *config.Config) {
	repo := newStubUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8}
	return service.NewAuthService(repo, cfg), repo, cfg
}

func TestLogin_Success(t *testing.T) {
	svc, _, cfg := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "clerk",
		Password: "hunter22",
		Role:     "seller",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "clerk", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "seller", resp.User.Role)

	// Token carries the expected claims.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "clerk", claims["username"])
	assert.Equal(t, "seller", claims["role"])
	assert.Equal(t, resp.User.ID, claims["user_id"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "clerk",
		Password: "hunter22",
		Role:     "seller",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "clerk", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	svc, repo, _ := buildAuthSvc()
	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "gone",
		Password: "hunter22",
		Role:     "seller",
	})
	require.NoError(t, err)
	repo.users[uuid.MustParse(created.ID)].Active = false

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "gone", Password: "hunter22"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUpdateUser_ChangesRoleAndActive(t *testing.T) {
	svc, _, _ := buildAuthSvc()
	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "promote",
		Password: "hunter22",
		Role:     "seller",
	})
	require.NoError(t, err)

	inactive := false
	resp, err := svc.UpdateUser(context.Background(), uuid.MustParse(created.ID), dto.UpdateUserRequest{
		Role:   "admin",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.False(t, resp.Active)
}
