package user

import (
	"context"

	"github.com/myphoto-inc/myphoto/internal/application/user/usecases"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	domainUser "github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// AccountRepositories groups the stores an account touches over its lifetime.
type AccountRepositories struct {
	Users      domainUser.Repository
	Sessions   domainUser.SessionRepository
	Passkeys   domainUser.PasskeyCredentialRepository
	Categories gallery.CategoryRepository
	Photos     gallery.PhotoRepository
}

// ServiceDDD is the application service that orchestrates the account use
// cases shared by the HTTP API and the operator CLI.
type ServiceDDD struct {
	createAccountUC *usecases.CreateAccountUseCase
	signupUC        *usecases.SignupUseCase
	hasUsersUC      *usecases.HasUsersUseCase
	loginUC         *usecases.LoginWithPasswordUseCase
	resetPasswordUC *usecases.ResetPasswordUseCase
	deleteAccountUC *usecases.DeleteAccountUseCase
	logger          logger.Interface
}

// NewServiceDDD creates a new DDD application service
func NewServiceDDD(
	repos AccountRepositories,
	sessions *SessionManager,
	passwordHasher domainUser.PasswordHasher,
	blobs gallery.BlobStore,
	txManager usecases.TransactionRunner,
	logger logger.Interface,
) *ServiceDDD {
	createAccountUC := usecases.NewCreateAccountUseCase(repos.Users, passwordHasher, logger)
	return &ServiceDDD{
		createAccountUC: createAccountUC,
		signupUC:        usecases.NewSignupUseCase(repos.Users, createAccountUC, txManager, logger),
		hasUsersUC:      usecases.NewHasUsersUseCase(repos.Users),
		loginUC:         usecases.NewLoginWithPasswordUseCase(repos.Users, passwordHasher, logger),
		resetPasswordUC: usecases.NewResetPasswordUseCase(repos.Users, sessions, passwordHasher, txManager, logger),
		deleteAccountUC: usecases.NewDeleteAccountUseCase(
			repos.Users, repos.Sessions, repos.Passkeys, repos.Categories, repos.Photos,
			blobs, txManager, logger,
		),
		logger: logger,
	}
}

// CreateAccount adds an account regardless of how many exist.
func (s *ServiceDDD) CreateAccount(ctx context.Context, username, name, password string) (*domainUser.User, error) {
	return s.createAccountUC.Execute(ctx, usecases.CreateAccountCommand{
		Username: username,
		Name:     name,
		Password: password,
	})
}

// Signup creates the first account and fails once any account exists.
func (s *ServiceDDD) Signup(ctx context.Context, username, name, password string) (*domainUser.User, error) {
	return s.signupUC.Execute(ctx, usecases.CreateAccountCommand{
		Username: username,
		Name:     name,
		Password: password,
	})
}

func (s *ServiceDDD) HasUsers(ctx context.Context) (bool, error) {
	return s.hasUsersUC.Execute(ctx)
}

func (s *ServiceDDD) Login(ctx context.Context, username, password string) (*domainUser.User, error) {
	return s.loginUC.Execute(ctx, usecases.LoginWithPasswordCommand{
		Username: username,
		Password: password,
	})
}

// ResetPassword sets a new password and revokes every session of the account.
func (s *ServiceDDD) ResetPassword(ctx context.Context, username, newPassword string) error {
	return s.resetPasswordUC.Execute(ctx, usecases.ResetPasswordCommand{
		Username:    username,
		NewPassword: newPassword,
	})
}

// DeleteAccount removes the account with its sessions, passkeys, categories and photos.
func (s *ServiceDDD) DeleteAccount(ctx context.Context, username string) error {
	return s.deleteAccountUC.Execute(ctx, usecases.DeleteAccountCommand{Username: username})
}
