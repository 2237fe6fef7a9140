package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/fpga-runtime/transcoder"
	"github.com/wippyai/fpga-runtime/typeexpr"
)

// NewUnpackCommand creates the unpack command.
func NewUnpackCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		typeExpr string
		mode     transferMode
	)

	cmd := &cobra.Command{
		Use:   "unpack -t <type> <hex>...",
		Short: "Decode a hardware bit pattern to JSON",
		Long: `Decode hex input with the given type and print the value as JSON.
Canonical and stream input is a sequence of bytes ("22 11" or "2211").
Register input is one 32-bit hex word per argument, lowest word first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(rootOpts, typeExpr, mode, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&typeExpr, "type", "t", "", "type expression")
	cmd.Flags().BoolVar(&mode.Register, "register", false, "input is register words")
	cmd.Flags().BoolVar(&mode.Stream, "stream", false, "input is FIFO stream bytes")
	cmd.Flags().IntVar(&mode.ElementBytes, "element-bytes", 0, "stream element size (default derived from the type)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runUnpack(opts *RootOptions, expr string, mode transferMode, args []string, w io.Writer) error {
	if err := mode.validate(); err != nil {
		return err
	}
	d, err := typeexpr.Descriptor(expr)
	if err != nil {
		return err
	}

	var value any
	switch {
	case mode.Register:
		words, err := parseWords(args)
		if err != nil {
			return err
		}
		if value, err = transcoder.UnpackRegister(d, words); err != nil {
			return err
		}

	case mode.Stream:
		raw, err := parseBytes(args)
		if err != nil {
			return err
		}
		if value, err = transcoder.UnpackStream(d, transcoder.ElementBytes(d, mode.ElementBytes), raw); err != nil {
			return err
		}

	default:
		raw, err := parseBytes(args)
		if err != nil {
			return err
		}
		if want := (d.BitWidth() + 7) / 8; len(raw) < want {
			return fmt.Errorf("%s needs %d bytes, got %d", d, want, len(raw))
		}
		if value, err = transcoder.Unpack(d, raw); err != nil {
			return err
		}
	}

	if opts.Format == "json" {
		return json.NewEncoder(w).Encode(map[string]any{"type": d.String(), "value": jsonValue(value)})
	}
	text, err := encodeJSON(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
