package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/logging"
)

const Version = "0.1.0"

var (
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "semiprocess",
	Short: "SemiProcess - Semiconductor Process Analysis Tools",
	Long: `SemiProcess exposes stateless analytical tools for semiconductor process
engineering (defect analysis, recipe comparison, SPC, trend forecasting, risk
scoring) over the Model Context Protocol.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level",
		getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
}

// HandleError prints error and exits
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// setupLog initializes the logging system from the --log-level flag
func setupLog(level string) error {
	return logging.Initialize(level)
}

// getEnv returns the environment variable value or a default
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
