package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/app/repositories"
	"github.com/hpfoods/hpfoods-api/app/services"
	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	"github.com/hpfoods/hpfoods-api/pkg/auth"
	"github.com/hpfoods/hpfoods-api/pkg/testkit"
)

const secret = "test-secret-key-with-enough-length"

var fixedNow = time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)

func newAuthService(t *testing.T) (*services.AuthService, *auth.Issuer) {
	t.Helper()
	issuer := auth.NewIssuer(secret).WithClock(func() time.Time { return fixedNow })
	return services.NewAuthService(testkit.DB(t), issuer), issuer
}

func registration(email, role string) services.RegisterInput {
	return services.RegisterInput{
		Email:           email,
		Password:        "Pa55word!",
		ConfirmPassword: "Pa55word!",
		Name:            "Test User",
		Role:            role,
	}
}

func TestRegisterThenLoginAsCustomer(t *testing.T) {
	svc, issuer := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registration("  Guest@Example.com ", "")))

	resp, err := svc.Login(ctx, "guest@example.com", "Pa55word!")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", resp.Email)
	assert.Equal(t, models.RoleCustomer, resp.Role)

	claims, err := issuer.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.FullName)
	assert.NotEmpty(t, claims.UserID)
	assert.Equal(t, claims.UserID, claims.Subject)
	assert.Equal(t, auth.TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestRegisterAdminRoleIsCaseInsensitive(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registration("boss@example.com", "aDmIn")))
	require.NoError(t, svc.Register(ctx, registration("cook@example.com", "chef")))

	boss, err := svc.Login(ctx, "boss@example.com", "Pa55word!")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, boss.Role)

	cook, err := svc.Login(ctx, "cook@example.com", "Pa55word!")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, cook.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registration("dup@example.com", "")))

	err := svc.Register(ctx, registration("DUP@example.com", ""))
	assert.ErrorIs(t, err, apperr.ErrCredentialConflict)
	assert.Equal(t, 400, apperr.StatusOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	in := registration("a@example.com", "")
	in.ConfirmPassword = "different"
	err := svc.Register(ctx, in)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, []string{"The confirmPassword must match password."}, apperr.MessagesOf(err))

	in = registration("", "")
	in.Name = " "
	err = svc.Register(ctx, in)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Len(t, apperr.MessagesOf(err), 2)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	in := registration("long@example.com", "")
	in.Password = strings.Repeat("p", 80)
	in.ConfirmPassword = in.Password
	err := svc.Register(ctx, in)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, 400, apperr.StatusOf(err))
	assert.Equal(t, []string{"The password may not be greater than 72 characters."}, apperr.MessagesOf(err))

	// 40 runes, 80 bytes: within the rune limit but over bcrypt's.
	in.Password = strings.Repeat("é", 40)
	in.ConfirmPassword = in.Password
	err = svc.Register(ctx, in)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, 400, apperr.StatusOf(err))
	assert.Equal(t, []string{"The password may not be longer than 72 bytes."}, apperr.MessagesOf(err))

	_, err = svc.Login(ctx, "long@example.com", in.Password)
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRegisterCreatesRolesOnce(t *testing.T) {
	db := testkit.DB(t)
	svc := services.NewAuthService(db, auth.NewIssuer(secret))
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registration("one@example.com", "")))
	require.NoError(t, svc.Register(ctx, registration("two@example.com", "admin")))

	var n int64
	require.NoError(t, db.Model(&models.Role{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, registration("known@example.com", "")))

	_, unknown := svc.Login(ctx, "nobody@example.com", "Pa55word!")
	_, wrong := svc.Login(ctx, "known@example.com", "not-it")

	require.ErrorIs(t, unknown, apperr.ErrInvalidCredentials)
	require.ErrorIs(t, wrong, apperr.ErrInvalidCredentials)
	assert.Equal(t, apperr.MessagesOf(unknown), apperr.MessagesOf(wrong))
	assert.Equal(t, []string{"Invalid credentials"}, apperr.MessagesOf(wrong))
}

func TestLoginWithoutRolesHasEmptyRole(t *testing.T) {
	db := testkit.DB(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("Pa55word!")
	require.NoError(t, err)
	require.NoError(t, repositories.NewUserRepository(db).Create(ctx, nil, &models.User{
		Email: "legacy@example.com", Name: "Legacy", PasswordHash: hash,
	}))

	resp, err := services.NewAuthService(db, auth.NewIssuer(secret)).Login(ctx, "legacy@example.com", "Pa55word!")
	require.NoError(t, err)
	assert.Equal(t, "", resp.Role)
}

func TestLoginUsesFirstAssignedRole(t *testing.T) {
	db := testkit.DB(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	hash, err := auth.HashPassword("Pa55word!")
	require.NoError(t, err)
	user := &models.User{Email: "both@example.com", Name: "Both Roles", PasswordHash: hash}
	require.NoError(t, users.Create(ctx, nil, user))

	roles, err := repositories.NewRoleRepository(db).EnsureRoles(ctx, nil, models.RoleAdmin, models.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, users.AssignRole(ctx, nil, user.ID, roles[models.RoleCustomer].ID))
	require.NoError(t, users.AssignRole(ctx, nil, user.ID, roles[models.RoleAdmin].ID))

	issuer := auth.NewIssuer(secret).WithClock(func() time.Time { return fixedNow })
	resp, err := services.NewAuthService(db, issuer).Login(ctx, "both@example.com", "Pa55word!")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Role)

	claims, err := issuer.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Role, claims.Role)
}

func TestLoginWithoutSecretIsSigningError(t *testing.T) {
	db := testkit.DB(t)
	ctx := context.Background()

	require.NoError(t, services.NewAuthService(db, auth.NewIssuer(secret)).Register(ctx, registration("x@example.com", "")))

	_, err := services.NewAuthService(db, auth.NewIssuer("")).Login(ctx, "x@example.com", "Pa55word!")
	assert.ErrorIs(t, err, apperr.ErrSigning)
	assert.Equal(t, 500, apperr.StatusOf(err))
}
