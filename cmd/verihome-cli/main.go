// Package main is the entry point for the verihome-cli application.
// It initializes the root command and registers the operations sub-commands
// (migrate, seed, create-admin, audit, version), then executes the
// command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/wilsonA2000/verihome/cmd/verihome-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "verihome-cli",
		Short: "VeriHome operations CLI tool",
		Long: `verihome-cli is the operations companion of the VeriHome API server.
It runs schema migrations, loads demo data, creates administrator accounts
and exports or purges the audit log.

Configuration is resolved exactly like the API server: an optional .env file,
then the YAML file named by CONFIG_PATH, then VERIHOME_* environment variable
overrides.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register migration commands
	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	// Register seed commands
	if err := commands.InitSeedCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize seed commands: %w", err)
	}

	// Register admin account commands
	if err := commands.InitAdminCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize admin commands: %w", err)
	}

	// Register audit log commands
	if err := commands.InitAuditCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize audit commands: %w", err)
	}

	// Register version command
	if err := commands.InitVersionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize version commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
