package migrate

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/myphoto-inc/myphoto/internal/infrastructure/migration"
	"github.com/myphoto-inc/myphoto/internal/interfaces/cli/bootstrap"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the embedded database migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*bootstrap.Env, *migration.GooseStrategy, error) {
	app, err := bootstrap.Load(env)
	if err != nil {
		return nil, nil, err
	}

	strategy, err := migration.NewGooseStrategy(app.Config.Database.Driver)
	if err != nil {
		app.Close()
		return nil, nil, err
	}
	return app, strategy, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	app, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Infow("running up migrations", "driver", app.Config.Database.Driver)

	if err := migration.NewManagerWithStrategy(strategy).Migrate(cmd.Context(), app.DB); err != nil {
		return err
	}

	app.Logger.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	app, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Infow("running down migrations", "steps", steps)

	if err := strategy.MigrateDown(cmd.Context(), app.DB, steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	app.Logger.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer app.Close()

	version, err := strategy.GetVersion(cmd.Context(), app.DB)
	if err != nil {
		return err
	}

	states, err := strategy.Status(cmd.Context(), app.DB)
	if err != nil {
		return err
	}

	return printStatus(cmd.OutOrStdout(), app.Config.Database.Driver, version, states)
}

func printStatus(out io.Writer, driver string, version int64, states []migration.MigrationState) error {
	fmt.Fprintf(out, "Migration Status:\n")
	fmt.Fprintf(out, "  Driver:          %s\n", driver)
	fmt.Fprintf(out, "  Current Version: %d\n\n", version)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tSCRIPT")
	for _, st := range states {
		state, appliedAt := "pending", "-"
		if st.Applied {
			state = "applied"
			appliedAt = st.AppliedAt.UTC().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", st.Version, state, appliedAt, st.Path)
	}
	return w.Flush()
}
