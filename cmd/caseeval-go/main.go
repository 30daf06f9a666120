package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/AtRiskMedia/caseeval-go/internal/application/startup"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/admin"
	"github.com/AtRiskMedia/caseeval-go/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "caseeval-go",
	Short:        "Case evaluation lead intake and admin dashboard",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var hashPasswordCmd = &cobra.Command{
	Use:     "hash-password [password]",
	Short:   "Print a bcrypt hash suitable for ADMIN_PASSWORD",
	Example: "caseeval-go hash-password 'correct horse battery staple'",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := admin.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := startup.Initialize(cfg); err != nil {
		return fmt.Errorf("application startup failed: %w", err)
	}
	log.Println("Application has shut down gracefully.")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd, hashPasswordCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
