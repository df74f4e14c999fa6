package main

import (
	"fmt"
	"io"
	"os"

	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/script"
	"github.com/colorfulnotion/x86emit/x86"
	"github.com/spf13/cobra"
)

func newEncodeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Assemble a script listing and print the machine code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			src, err := readSource(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			code, err := encode(cmd.OutOrStdout(), string(src), cfg.mode)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Info(log.CliMonitoring, "encoded", "file", path, "bytes", len(code))
			return writeCode(cmd.OutOrStdout(), code, cfg.format, cfg.mode)
		},
	}
	cmd.Flags().StringVar(&cfg.format, "format", cfg.format, "output format: hex, asm or both")
	return cmd
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// encode runs src and resolves its labels. print() output goes to out.
func encode(out io.Writer, src string, mode int) ([]byte, error) {
	r := script.New(out, mode)
	if err := r.Run(src); err != nil {
		return nil, err
	}
	return r.Bytes()
}

func writeCode(w io.Writer, code []byte, format string, mode int) error {
	var err error
	switch format {
	case "hex":
		_, err = fmt.Fprintf(w, "% X\n", code)
	case "asm":
		for _, in := range x86.DisassembleInstructions(code, mode) {
			if _, err = fmt.Fprintln(w, in.Text()); err != nil {
				return err
			}
		}
	default:
		_, err = io.WriteString(w, x86.Disassemble(code, mode))
	}
	return err
}
