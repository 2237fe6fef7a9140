package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/fpga-runtime/bitfile"
	"github.com/wippyai/fpga-runtime/registry"
)

type registerInfo struct {
	Name      string `json:"name"`
	Offset    uint32 `json:"offset"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Bits      int    `json:"bits"`
	Words     int    `json:"words"`
	Indicator bool   `json:"indicator"`
}

type fifoInfo struct {
	Name         string `json:"name"`
	Direction    string `json:"direction"`
	Type         string `json:"type"`
	Number       uint32 `json:"number"`
	ElementBytes int    `json:"element_bytes"`
}

type omittedInfo struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type inspectResult struct {
	Name      string         `json:"name"`
	Signature string         `json:"signature"`
	Registers []registerInfo `json:"registers"`
	Fifos     []fifoInfo     `json:"fifos"`
	Omitted   []omittedInfo  `json:"omitted,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var internal bool

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "List the registers and FIFOs of a descriptor document",
		Long: `List every register and FIFO the runtime can access, with its type, size
and transfer layout. Definitions whose types cannot be modeled are listed
separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], internal, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&internal, "internal", false, "include internal registers")
	return cmd
}

func runInspect(opts *RootOptions, path string, internal bool, w io.Writer) error {
	doc, err := bitfile.Open(path)
	if err != nil {
		return err
	}
	reg := registry.New(doc, registry.WithLogger(opts.log), registry.WithInternal(internal))
	result := describe(doc, reg)

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	st := opts.stylesFor(w)
	fmt.Fprintf(w, "%s %s\n\n", st.title.Render(result.Name), st.dim.Render("signature "+result.Signature))

	rows := make([][]string, 0, len(result.Registers))
	for _, r := range result.Registers {
		flags := ""
		if r.Indicator {
			flags = "indicator"
		}
		rows = append(rows, []string{
			st.name.Render(r.Name),
			fmt.Sprintf("0x%x", r.Offset),
			r.Kind,
			strconv.Itoa(r.Bits),
			strconv.Itoa(r.Words),
			flags,
			st.typ.Render(r.Type),
		})
	}
	fmt.Fprintln(w, "Registers")
	fmt.Fprintln(w, renderTable(st, []string{"NAME", "OFFSET", "KIND", "BITS", "WORDS", "FLAGS", "TYPE"}, rows))

	rows = rows[:0]
	for _, f := range result.Fifos {
		rows = append(rows, []string{
			st.name.Render(f.Name),
			strconv.FormatUint(uint64(f.Number), 10),
			f.Direction,
			strconv.Itoa(f.ElementBytes),
			st.typ.Render(f.Type),
		})
	}
	fmt.Fprintln(w, "FIFOs")
	fmt.Fprintln(w, renderTable(st, []string{"NAME", "NUMBER", "DIRECTION", "ELEMENT", "TYPE"}, rows))

	if len(result.Omitted) > 0 {
		fmt.Fprintln(w, "Omitted")
		for _, o := range result.Omitted {
			fmt.Fprintf(w, "  %s (%s): %s\n", o.Name, o.Kind, st.err.Render(o.Error))
		}
	}
	return nil
}

func describe(doc *bitfile.Document, reg *registry.Registry) inspectResult {
	result := inspectResult{
		Name:      doc.Name,
		Signature: reg.Signature(),
		Registers: []registerInfo{},
		Fifos:     []fifoInfo{},
	}
	for _, name := range reg.RegisterNames() {
		r, _ := reg.Register(name)
		d := r.Descriptor()
		result.Registers = append(result.Registers, registerInfo{
			Name:      name,
			Offset:    r.Offset(),
			Kind:      d.Kind().String(),
			Type:      d.String(),
			Bits:      d.BitWidth(),
			Words:     r.Words(),
			Indicator: r.Indicator(),
		})
	}
	for _, name := range reg.FifoNames() {
		f, _ := reg.Fifo(name)
		result.Fifos = append(result.Fifos, fifoInfo{
			Name:         name,
			Direction:    string(f.Direction()),
			Type:         f.Descriptor().String(),
			Number:       f.Number(),
			ElementBytes: f.ElementBytes(),
		})
	}
	for _, o := range reg.Omitted() {
		result.Omitted = append(result.Omitted, omittedInfo{Name: o.Name, Kind: o.Kind, Error: o.Err.Error()})
	}
	return result
}

// renderTable lays out cells in padded columns. Widths are measured with
// lipgloss so styled cells align.
func renderTable(st styles, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		b.WriteString("  ")
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(style.Render(cell))
				break
			}
			b.WriteString(style.Render(cell))
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
		b.WriteByte('\n')
	}

	writeRow(headers, st.header)
	for _, row := range rows {
		writeRow(row, lipgloss.NewStyle())
	}
	return b.String()
}
