// Package account holds the operator commands that manage the portfolio account.
package account

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	userApp "github.com/myphoto-inc/myphoto/internal/application/user"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/auth"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/config"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/repository"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/storage"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/token"
	"github.com/myphoto-inc/myphoto/internal/interfaces/cli/bootstrap"
	"github.com/myphoto-inc/myphoto/internal/shared/db"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type accountService interface {
	CreateAccount(ctx context.Context, username, name, password string) (*user.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
	DeleteAccount(ctx context.Context, username string) error
}

var (
	env       string
	username  string
	name      string
	assumeYes bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
		Long:  `Create accounts, reset passwords and delete accounts from the terminal.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&username, "username", "u", "", "Account username (prompted when omitted)")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: withService(func(ctx context.Context, svc accountService, p Prompter, out io.Writer) error {
			return runCreate(ctx, svc, p, out, username, name)
		}),
	}
	create.Flags().StringVar(&name, "name", "", "Display name (prompted when omitted)")

	reset := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password and sign out every session",
		RunE: withService(func(ctx context.Context, svc accountService, p Prompter, out io.Writer) error {
			return runResetPassword(ctx, svc, p, out, username)
		}),
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account with all of its categories, photos and passkeys",
		RunE: withService(func(ctx context.Context, svc accountService, p Prompter, out io.Writer) error {
			return runDelete(ctx, svc, p, out, username, assumeYes)
		}),
	}
	del.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(create, reset, del)
	return cmd
}

type accountAction func(ctx context.Context, svc accountService, p Prompter, out io.Writer) error

func withService(action accountAction) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.Load(env)
		if err != nil {
			return err
		}
		defer app.Close()

		blobs, err := storage.NewBlobStoreFromConfig(cmd.Context(), app.Config.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize blob storage: %w", err)
		}
		svc := newService(app.DB, app.Config, blobs, app.Logger)

		out := cmd.OutOrStdout()
		return action(cmd.Context(), svc, newTerminalPrompter(out), out)
	}
}

func newService(gdb *gorm.DB, cfg *config.Config, blobs gallery.BlobStore, log logger.Interface) *userApp.ServiceDDD {
	users := repository.NewUserRepository(gdb, log)
	sessions := repository.NewSessionRepository(gdb, log)

	sessionManager := userApp.NewSessionManager(
		sessions, users, token.NewTokenGenerator(), cfg.Auth.Session.TTL(), log,
	)

	return userApp.NewServiceDDD(
		userApp.AccountRepositories{
			Users:      users,
			Sessions:   sessions,
			Passkeys:   repository.NewPasskeyCredentialRepository(gdb, log),
			Categories: repository.NewCategoryRepository(gdb, log),
			Photos:     repository.NewPhotoRepository(gdb, log),
		},
		sessionManager,
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		blobs,
		db.NewTransactionManager(gdb),
		log,
	)
}

func runCreate(ctx context.Context, svc accountService, p Prompter, out io.Writer, username, name string) error {
	username, err := promptIfEmpty(p, username, "Username: ")
	if err != nil {
		return err
	}
	name, err = promptIfEmpty(p, name, "Name: ")
	if err != nil {
		return err
	}
	password, err := promptNewPassword(p)
	if err != nil {
		return err
	}

	created, err := svc.CreateAccount(ctx, username, name, password)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Fprintf(out, "Account %q created (id %d)\n", created.Username(), created.ID())
	return nil
}

func runResetPassword(ctx context.Context, svc accountService, p Prompter, out io.Writer, username string) error {
	username, err := promptIfEmpty(p, username, "Username: ")
	if err != nil {
		return err
	}
	password, err := promptNewPassword(p)
	if err != nil {
		return err
	}

	if err := svc.ResetPassword(ctx, username, password); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	fmt.Fprintf(out, "Password for %q updated; all sessions signed out\n", username)
	return nil
}

func runDelete(ctx context.Context, svc accountService, p Prompter, out io.Writer, username string, assumeYes bool) error {
	username, err := promptIfEmpty(p, username, "Username: ")
	if err != nil {
		return err
	}

	if !assumeYes {
		confirm, err := p.Prompt(fmt.Sprintf("Type %q to delete the account and all of its photos: ", username))
		if err != nil {
			return err
		}
		if confirm != username {
			return fmt.Errorf("confirmation did not match, nothing deleted")
		}
	}

	if err := svc.DeleteAccount(ctx, username); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	fmt.Fprintf(out, "Account %q deleted\n", username)
	return nil
}
