package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/fpga-runtime/transcoder"
	"github.com/wippyai/fpga-runtime/typeexpr"
)

type packResult struct {
	Type   string   `json:"type"`
	Bits   int      `json:"bits"`
	Bytes  string   `json:"bytes,omitempty"`
	Words  []string `json:"words,omitempty"`
	Stream string   `json:"stream,omitempty"`
}

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		typeExpr string
		mode     transferMode
	)

	cmd := &cobra.Command{
		Use:   "pack -t <type> <json-value>",
		Short: "Encode a JSON value as a hardware bit pattern",
		Long: `Encode a JSON value with the given type. Without a mode flag the canonical
packed bytes are printed. --register prints the 32-bit words written to a
register, lowest word first. --stream takes a JSON array and prints the FIFO
bytes for its elements.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(rootOpts, typeExpr, mode, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&typeExpr, "type", "t", "", "type expression, e.g. 'cluster{a: u8, b: [4]fxp<s,16,8>}'")
	cmd.Flags().BoolVar(&mode.Register, "register", false, "produce register words")
	cmd.Flags().BoolVar(&mode.Stream, "stream", false, "produce FIFO stream bytes from a JSON array")
	cmd.Flags().IntVar(&mode.ElementBytes, "element-bytes", 0, "stream element size (default derived from the type)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runPack(opts *RootOptions, expr string, mode transferMode, input string, w io.Writer) error {
	if err := mode.validate(); err != nil {
		return err
	}
	d, err := typeexpr.Descriptor(expr)
	if err != nil {
		return err
	}
	value, err := decodeJSON(input)
	if err != nil {
		return err
	}

	result := packResult{Type: d.String(), Bits: d.BitWidth()}
	var text string

	switch {
	case mode.Register:
		words, err := transcoder.PackRegister(d, value)
		if err != nil {
			return err
		}
		text = formatWords(words)
		for _, word := range words {
			result.Words = append(result.Words, fmt.Sprintf("%08x", word))
		}

	case mode.Stream:
		values, ok := value.([]any)
		if !ok {
			return fmt.Errorf("--stream needs a JSON array of elements")
		}
		raw, err := transcoder.PackStream(d, transcoder.ElementBytes(d, mode.ElementBytes), values)
		if err != nil {
			return err
		}
		text = formatBytes(raw)
		result.Stream = text

	default:
		raw, err := transcoder.Pack(d, value)
		if err != nil {
			return err
		}
		text = formatBytes(raw)
		result.Bytes = text
	}

	if opts.Format == "json" {
		return json.NewEncoder(w).Encode(result)
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
