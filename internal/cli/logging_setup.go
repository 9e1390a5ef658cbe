package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecometer/ecometer/internal/config"
	"github.com/ecometer/ecometer/internal/logging"
)

// setupLogging builds the logger from config plus CLI flags and attaches it
// to the command context, where engine code retrieves it via
// logging.FromContext. --debug forces verbose console output regardless of
// the config file.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	logCfg := cfg.ToLoggingConfig()

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = logging.FormatConsole
		logCfg.Output = "stderr"
		logCfg.File = ""
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open log file, logging to stderr: %v\n", err)
	}
	logger = logging.ComponentLogger(logger, "cli")

	ctx := logging.ContextWithTraceID(cmd.Context(), logging.NewTraceID())
	cmd.SetContext(logger.WithContext(ctx))

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}
