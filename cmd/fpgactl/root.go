package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/fpga-runtime/bitfile"
	"github.com/wippyai/fpga-runtime/loopback"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
	NoColor bool

	log *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the fpgactl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "fpgactl",
		Short: "Inspect FPGA descriptor documents and encode register values",
		Long: `fpgactl reads the descriptor document of a compiled hardware image and
converts host values to the exact bit patterns the hardware expects.

Examples:
  fpgactl inspect accelerator.lvbitx
  fpgactl pack -t 'cluster{a: u8, b: u16}' '{"a": 1, "b": 2}'
  fpgactl pack -t 'fxp<s,16,8>' --register 1.25
  fpgactl unpack -t 'fxp<s,16,8>' --register 01400000
  fpgactl browse accelerator.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("create logger: %w", err)
				}
				opts.log = l
			}
			bitfile.SetLogger(opts.log)
			loopback.SetLogger(opts.log)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable styled output")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewPackCommand(opts))
	cmd.AddCommand(NewUnpackCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))

	return cmd
}

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	name   lipgloss.Style
	typ    lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
}

// stylesFor returns colored styles when w is a terminal and color is allowed.
func (o *RootOptions) stylesFor(w io.Writer) styles {
	if o.NoColor || !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{title: plain, header: plain, name: plain, typ: plain, dim: plain, err: plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		name:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		typ:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
