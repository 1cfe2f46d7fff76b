package auth_test

import (
	"context"
	"errors"
	"testing"

	"go-leaveflow/internal/auth"
	"go-leaveflow/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}

type fakeRBACService struct {
	loadPolicyFn func() error
}

func (f *fakeRBACService) LoadPolicy() error {
	if f.loadPolicyFn != nil {
		return f.loadPolicyFn()
	}
	return nil
}

func (f *fakeRBACService) Enforce(domain.EnforceRequest) (bool, error) {
	return true, nil
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	hierarchyID := uuid.New()
	activeUser := func() *auth.User {
		return &auth.User{
			ID:          uuid.New(),
			HierarchyID: &hierarchyID,
			FirstName:   "Claire",
			LastName:    "Moreau",
			Email:       "claire@example.com",
			Password:    hashPassword(t, "s3cret"),
			Role:        "Ressources Humaines",
			IsActive:    true,
		}
	}

	t.Run("success normalizes locale role", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, "claire@example.com", email)
				return activeUser(), nil
			},
		}
		svc := auth.NewService(repo, &fakeRBACService{})

		access, refresh, resp, err := svc.Login(ctx, "claire@example.com", "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "HR", resp.Role)
		assert.Equal(t, hierarchyID.String(), resp.HierarchyID)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return activeUser(), nil
			},
		}
		svc := auth.NewService(repo, &fakeRBACService{})

		_, _, _, err := svc.Login(ctx, "claire@example.com", "wrong")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("unknown email rejected without detail", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return nil, errors.New("record not found")
			},
		}
		svc := auth.NewService(repo, &fakeRBACService{})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "s3cret")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("inactive user rejected", func(t *testing.T) {
		u := activeUser()
		u.IsActive = false
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, &fakeRBACService{})

		_, _, _, err := svc.Login(ctx, "claire@example.com", "s3cret")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})
}
