package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/fpga-runtime/types"
)

// transferMode selects the layout produced by pack and consumed by unpack.
type transferMode struct {
	Register     bool
	Stream       bool
	ElementBytes int
}

func (m transferMode) validate() error {
	if m.Register && m.Stream {
		return fmt.Errorf("--register and --stream are mutually exclusive")
	}
	if m.ElementBytes < 0 {
		return fmt.Errorf("--element-bytes must not be negative")
	}
	if m.ElementBytes > 0 && !m.Stream {
		return fmt.Errorf("--element-bytes requires --stream")
	}
	return nil
}

// decodeJSON parses one JSON value keeping numbers exact.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse value: trailing data after JSON value")
	}
	return v, nil
}

// jsonValue converts an unpacked value to a JSON-encodable form. Fixed-point
// values become exact decimal numbers, or objects when the overflow flag is
// set.
func jsonValue(v any) any {
	switch t := v.(type) {
	case types.FixedPointValue:
		n := json.Number(types.FixedPointValue{Value: t.Value}.String())
		if t.Overflow {
			return map[string]any{"value": n, "overflow": true}
		}
		return n
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = jsonValue(e)
		}
		return out
	default:
		return v
	}
}

func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(jsonValue(v)); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func formatBytes(b []byte) string {
	return fmt.Sprintf("% x", b)
}

func formatWords(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%08x", w)
	}
	return strings.Join(parts, " ")
}

// parseBytes accepts hex digits with optional whitespace between bytes.
func parseBytes(args []string) ([]byte, error) {
	s := strings.Join(strings.Fields(strings.Join(args, " ")), "")
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse hex bytes: %w", err)
	}
	return b, nil
}

// parseWords accepts one 32-bit hex word per field, lowest word first.
func parseWords(args []string) ([]uint32, error) {
	fields := strings.Fields(strings.Join(args, " "))
	words := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(f), "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parse register word %q: %w", f, err)
		}
		words[i] = uint32(v)
	}
	return words, nil
}
