package transcoder

import (
	"fmt"

	"github.com/wippyai/fpga-runtime/align"
	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

const (
	// RegisterWordBits is the width of one register transfer word.
	RegisterWordBits = 32

	// DefaultFixedPointElementBytes is the stream element size assumed for
	// fixed-point channels that do not declare one.
	DefaultFixedPointElementBytes = 8
)

// RegisterWords returns the number of 32-bit words a register of type d
// occupies. Zero-width types still occupy one word.
func RegisterWords(d types.Descriptor) int {
	if d == nil {
		return 1
	}
	n := (d.BitWidth() + RegisterWordBits - 1) / RegisterWordBits
	return max(n, 1)
}

// ElementBytes returns the stream element size for d. A positive declared
// size wins; otherwise fixed-point defaults to DefaultFixedPointElementBytes
// and everything else to ceil(bits/8), at least one byte.
func ElementBytes(d types.Descriptor, declared int) int {
	if declared > 0 {
		return declared
	}
	if d == nil {
		return 1
	}
	if d.Kind() == types.KindFixedPoint {
		return DefaultFixedPointElementBytes
	}
	return max((d.BitWidth()+7)/8, 1)
}

// PackRegister encodes value as register words ready for the transport.
// Composite values are left-aligned within the words; primitives stay at
// bit 0.
func PackRegister(d types.Descriptor, value any) ([]uint32, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhasePack, "nil descriptor")
	}
	buf, err := Pack(d, value)
	if err != nil {
		return nil, err
	}
	unitBits := RegisterWords(d) * RegisterWordBits
	if d.Kind().IsComposite() {
		if buf, err = align.ForRegisterWrite(buf, d.BitWidth(), unitBits); err != nil {
			return nil, err
		}
	}
	return align.BytesToWords(buf), nil
}

// UnpackRegister decodes register words read from the transport.
func UnpackRegister(d types.Descriptor, words []uint32) (any, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseUnpack, "nil descriptor")
	}
	if want := RegisterWords(d); len(words) != want {
		return nil, errors.New(errors.PhaseUnpack, errors.KindInvalidData).
			HWType(d.String()).
			Detail("register needs %d words, got %d", want, len(words)).
			Build()
	}
	buf := align.WordsToBytes(words)
	if d.Kind().IsComposite() {
		var err error
		if buf, err = align.FromRegisterRead(buf, d.BitWidth(), len(buf)*8); err != nil {
			return nil, err
		}
	}
	return Unpack(d, buf)
}

// PackStream encodes values as consecutive stream elements of elementBytes.
func PackStream(d types.Descriptor, elementBytes int, values []any) ([]byte, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhasePack, "nil descriptor")
	}
	if elementBytes <= 0 {
		return nil, errors.InvalidInput(errors.PhasePack, fmt.Sprintf("element size %d", elementBytes))
	}
	composite := d.Kind().IsComposite()
	out := make([]byte, 0, len(values)*elementBytes)
	for i, v := range values {
		buf, err := Pack(d, v)
		if err != nil {
			return nil, prefixIndex(err, i)
		}
		elem, err := align.ForStreamWrite(buf, d.BitWidth(), elementBytes, composite)
		if err != nil {
			return nil, prefixIndex(err, i)
		}
		out = append(out, elem...)
	}
	return out, nil
}

// UnpackStream decodes data as consecutive stream elements of elementBytes.
func UnpackStream(d types.Descriptor, elementBytes int, data []byte) ([]any, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseUnpack, "nil descriptor")
	}
	if elementBytes <= 0 {
		return nil, errors.InvalidInput(errors.PhaseUnpack, fmt.Sprintf("element size %d", elementBytes))
	}
	if len(data)%elementBytes != 0 {
		return nil, errors.InvalidData(errors.PhaseUnpack, nil,
			fmt.Sprintf("%d bytes is not a whole number of %d-byte elements", len(data), elementBytes))
	}
	composite := d.Kind().IsComposite()
	out := make([]any, 0, len(data)/elementBytes)
	for off := 0; off < len(data); off += elementBytes {
		buf, err := align.FromStreamRead(data[off:off+elementBytes], d.BitWidth(), elementBytes, composite)
		if err != nil {
			return nil, prefixIndex(err, off/elementBytes)
		}
		v, err := Unpack(d, buf)
		if err != nil {
			return nil, prefixIndex(err, off/elementBytes)
		}
		out = append(out, v)
	}
	return out, nil
}

func prefixIndex(err error, i int) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append([]string{errors.Index(i)}, e.Path...)
	}
	return err
}
