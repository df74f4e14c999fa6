// x86emit runs JavaScript assembly listings through the x86 encoders and
// prints the resulting machine code.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/colorfulnotion/x86emit/log"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// config holds the flag values shared by all subcommands.
type config struct {
	logLevel   string
	logModules string
	mode       int
	format     string
	history    string
}

func defaultConfig() config {
	return config{
		logLevel:   env.Str("X86EMIT_LOG_LEVEL", "info"),
		logModules: env.Str("X86EMIT_LOG_MODULES"),
		mode:       env.Int("X86EMIT_MODE", 32),
		format:     env.Str("X86EMIT_FORMAT", "both"),
		history:    env.Str("X86EMIT_HISTORY", filepath.Join(os.TempDir(), "x86emit_history")),
	}
}

func (c config) validate() error {
	if c.mode != 32 && c.mode != 64 {
		return fmt.Errorf("mode must be 32 or 64, got %d", c.mode)
	}
	switch c.format {
	case "hex", "asm", "both":
	default:
		return fmt.Errorf("format must be hex, asm or both, got %q", c.format)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	rootCmd := &cobra.Command{
		Use:           "x86emit",
		Short:         "IA-32 / x86-64 machine code emitter",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := log.ParseLevel(cfg.logLevel); err != nil {
				return err
			}
			log.InitLogger(cfg.logLevel)
			log.EnableModules(cfg.logModules)
			log.Debug(log.CliMonitoring, "x86emit starting", "cmd", cmd.Name(), "mode", cfg.mode, "format", cfg.format)
			return cfg.validate()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.logLevel, "log-level", cfg.logLevel, "log level: trace, debug, info, warn, error, crit")
	flags.StringVar(&cfg.logModules, "log-modules", cfg.logModules, "comma separated modules to trace (enc_mod, patch_mod, frame_mod, script_mod, cli_mod, all)")
	flags.IntVar(&cfg.mode, "mode", cfg.mode, "disassembly mode: 32 or 64")

	rootCmd.AddCommand(newEncodeCmd(&cfg), newReplCmd(&cfg), newTablesCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "x86emit:", err)
		os.Exit(1)
	}
}
