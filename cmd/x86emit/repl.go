package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/script"
	"github.com/colorfulnotion/x86emit/x86"
	"github.com/spf13/cobra"
)

const replHelp = `Each line is JavaScript, e.g. mov("eax", 5) or j("nz", "loop").
  .list   disassemble everything emitted so far
  .labels show labels and their positions
  .reset  drop all code, labels and errors
  exit    leave`

func newReplCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive assembler console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:      "x86> ",
				HistoryFile: cfg.history,
			})
			if err != nil {
				return fmt.Errorf("readline: %w", err)
			}
			defer rl.Close()
			return repl(rl, rl.Stdout(), cfg.mode)
		},
	}
	cmd.Flags().StringVar(&cfg.history, "history", cfg.history, "history file")
	return cmd
}

// lineReader is the part of readline the console loop needs.
type lineReader interface {
	Readline() (string, error)
}

func repl(in lineReader, out io.Writer, mode int) error {
	r := script.New(out, mode)
	fmt.Fprintf(out, "x86emit console (%d-bit listing)\n%s\n", mode, replHelp)
	for {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case ".list":
			fmt.Fprint(out, r.Listing())
			continue
		case ".labels":
			for name, pos := range r.Labels() {
				if pos < 0 {
					fmt.Fprintf(out, "%-16s unbound\n", name)
				} else {
					fmt.Fprintf(out, "%-16s 0x%04x\n", name, pos)
				}
			}
			continue
		case ".reset":
			r.Reset()
			continue
		case ".help":
			fmt.Fprintln(out, replHelp)
			continue
		}

		start, emitted, value, err := r.Eval(line)
		if err != nil {
			log.Debug(log.CliMonitoring, "line failed", "line", line, "err", err)
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		for _, in := range x86.DisassembleInstructions(emitted, mode) {
			fmt.Fprintf(out, "0x%04x: %-22s %s\n", start+in.Offset, fmt.Sprintf("% x", in.Bytes), in.Text())
		}
		if len(emitted) == 0 && value != nil && value.Export() != nil {
			fmt.Fprintln(out, value.String())
		}
	}
}
