package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sonarsheet/sonarsheet/core"
	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/internal/runstore"
	"github.com/sonarsheet/sonarsheet/internal/sonarapi"
	"github.com/sonarsheet/sonarsheet/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "sonarsheet",
	Short:              "Collect SonarQube metrics across an organization into one report.",
	Long:               `Sonarsheet pulls quality metrics for every project in a SonarQube or SonarCloud organization and condenses them into a detail table, a summary grid and an Excel workbook.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".sonarsheet") // Name of config file (without extension)
		viper.SetConfigType("yaml")        // We'll use YAML format
		viper.AddConfigPath(".")           // Look in the current directory
		viper.AddConfigPath("$HOME")       // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("SONARSHEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("server-url", contract.DefaultServerURL)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("timeout", contract.DefaultTimeoutSecs)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("workbook-file", contract.DefaultWorkbookFile)
	viper.SetDefault("history-backend", schema.SQLiteBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("history-rows", contract.DefaultHistoryRows)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Prompt for a token when none was given and stdin is interactive.
	if err := promptForToken(); err != nil {
		return err
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// promptForToken asks for the API token when none was provided through flags,
// env or config file. An empty answer keeps the connection anonymous, which
// works for public organizations.
func promptForToken() error {
	if input.Token != "" || !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	fmt.Fprint(os.Stderr, "SonarQube token (press Enter for anonymous access): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("could not read token: %w", err)
	}
	input.Token = string(raw)
	return nil
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".sonarsheet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// runExecutor builds the metrics source and run store from the validated
// config and invokes the given executor. Run-history failures degrade to a
// warning so a broken database never blocks a report.
func runExecutor(executor core.ExecutorFunc, failureMsg string) {
	source := sonarapi.NewClient(cfg)

	var store contract.RunStore
	if s, err := runstore.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		contract.LogWarn("Run history tracking disabled", err)
	} else {
		store = s
		defer func() { _ = s.Close() }()
	}

	if err := executor(rootCtx, cfg, source, store); err != nil {
		contract.LogFatal(failureMsg, err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
