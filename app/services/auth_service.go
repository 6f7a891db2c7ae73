package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/app/repositories"
	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	"github.com/hpfoods/hpfoods-api/pkg/auth"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/metrics"
	"github.com/hpfoods/hpfoods-api/pkg/validate"
)

// RegisterInput is the body of POST /api/auth/register.
type RegisterInput struct {
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Name            string `json:"name"            validate:"required"`
	Role            string `json:"role"`
}

// LoginInput is the body of POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService struct {
	db     *gorm.DB
	users  *repositories.UserRepository
	roles  *repositories.RoleRepository
	issuer *auth.Issuer
}

func NewAuthService(db *gorm.DB, issuer *auth.Issuer) *AuthService {
	return &AuthService{
		db:     db,
		users:  repositories.NewUserRepository(db),
		roles:  repositories.NewRoleRepository(db),
		issuer: issuer,
	}
}

// RoleFor maps a requested role onto a stored one: "admin" in any case
// is Admin, everything else is Customer.
func RoleFor(requested string) string {
	if strings.EqualFold(strings.TrimSpace(requested), models.RoleAdmin) {
		return models.RoleAdmin
	}
	return models.RoleCustomer
}

// Register creates an account. The Admin and Customer roles are created
// on first use.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (err error) {
	defer func() { metrics.RecordAuth("register", err) }()

	in.Email = models.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Check(&in); err != nil {
		return err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return apperr.Persistence("Error while registering", err)
	}
	if exists {
		return apperr.CredentialConflict("Email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return apperr.Validation("The password may not be longer than 72 bytes.")
	}
	if err != nil {
		return apperr.Persistence("Error while registering", err)
	}

	role := RoleFor(in.Role)
	user := &models.User{Email: in.Email, Name: in.Name, PasswordHash: hash}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := s.roles.EnsureRoles(ctx, tx, models.RoleAdmin, models.RoleCustomer)
		if err != nil {
			return apperr.RoleAssignment("Error while registering", err)
		}
		r, ok := roles[role]
		if !ok {
			return apperr.RoleAssignment("Error while registering", errors.New("role "+role+" not found"))
		}

		if err := s.users.Create(ctx, tx, user); err != nil {
			if repositories.IsDuplicate(err) {
				return apperr.CredentialConflict("Email already exists")
			}
			return apperr.Persistence("Error while registering", err)
		}
		if err := s.users.AssignRole(ctx, tx, user.ID, r.ID); err != nil {
			return apperr.RoleAssignment("Error while registering", err)
		}
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if !errors.As(err, &ae) {
			err = apperr.Persistence("Error while registering", err)
		}
		return err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID, "role", role)
	return nil
}

// Login verifies credentials and issues a token carrying the user's first
// role. An unknown email and a wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (resp *LoginResponse, err error) {
	defer func() { metrics.RecordAuth("login", err) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Persistence("Error while logging in", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.InvalidCredentials()
	}

	roles, err := s.users.RoleNames(ctx, user.ID)
	if err != nil {
		return nil, apperr.Persistence("Error while logging in", err)
	}
	role := ""
	if len(roles) > 0 {
		role = roles[0]
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.Name, role)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Email: user.Email, Token: token, Role: role}, nil
}
