package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/myphoto-inc/myphoto/internal/interfaces/cli/account"
	"github.com/myphoto-inc/myphoto/internal/interfaces/cli/migrate"
	"github.com/myphoto-inc/myphoto/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "myphoto",
		Short: "MyPhoto - a self-hosted photography portfolio",
		Long:  `MyPhoto serves a photographer's public gallery and private library, with server, migration and account commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		account.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
