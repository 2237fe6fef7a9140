package align

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/wippyai/fpga-runtime/errors"
)

// RegisterWordBytes is the width of one register transfer word.
const RegisterWordBytes = 4

// ForRegisterWrite left-aligns a packed value of valueBits within a register
// transfer of unitBits. The result is unitBits/8 bytes long.
func ForRegisterWrite(buf []byte, valueBits, unitBits int) ([]byte, error) {
	if err := check(len(buf), valueBits, unitBits); err != nil {
		return nil, err
	}
	x := leToInt(buf)
	x.Lsh(x, uint(unitBits-valueBits))
	return intToLE(x, unitBits/8), nil
}

// FromRegisterRead undoes ForRegisterWrite. The result is the canonical
// right-aligned pattern, ceil(valueBits/8) bytes long.
func FromRegisterRead(buf []byte, valueBits, unitBits int) ([]byte, error) {
	if err := check(len(buf), valueBits, unitBits); err != nil {
		return nil, err
	}
	x := leToInt(buf)
	x.Rsh(x, uint(unitBits-valueBits))
	return intToLE(mask(x, valueBits), (valueBits+7)/8), nil
}

// ForStreamWrite prepares one packed element for a stream transfer of
// elementBytes. Composite elements are shifted first and then byte-swapped.
func ForStreamWrite(buf []byte, valueBits, elementBytes int, composite bool) ([]byte, error) {
	if !composite {
		return pad(buf, valueBits, elementBytes)
	}
	out, err := ForRegisterWrite(buf, valueBits, elementBytes*8)
	if err != nil {
		return nil, err
	}
	if elementBytes > 2 {
		SwapWords(out)
	}
	return out, nil
}

// FromStreamRead undoes ForStreamWrite: swap first, then shift. buf is not
// modified.
func FromStreamRead(buf []byte, valueBits, elementBytes int, composite bool) ([]byte, error) {
	if len(buf) != elementBytes {
		return nil, errors.New(errors.PhaseAlign, errors.KindInvalidData).
			Detail("stream element is %d bytes, expected %d", len(buf), elementBytes).
			Build()
	}
	if !composite {
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	}
	work := buf
	if elementBytes > 2 {
		work = make([]byte, len(buf))
		copy(work, buf)
		SwapWords(work)
	}
	return FromRegisterRead(work, valueBits, elementBytes*8)
}

// SwapWords reverses the bytes of every 4-byte group in place. A trailing
// partial group is reversed using only the bytes present. Applying it twice
// restores the input.
func SwapWords(buf []byte) {
	for start := 0; start < len(buf); start += 4 {
		end := min(start+4, len(buf))
		for i, j := start, end-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
}

// WordsToBytes lays register words out little-endian, word 0 first.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*RegisterWordBytes)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*RegisterWordBytes:], w)
	}
	return out
}

// BytesToWords is the inverse of WordsToBytes. A trailing partial word is
// zero-padded.
func BytesToWords(buf []byte) []uint32 {
	n := (len(buf) + RegisterWordBytes - 1) / RegisterWordBytes
	padded := make([]byte, n*RegisterWordBytes)
	copy(padded, buf)
	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(padded[i*RegisterWordBytes:])
	}
	return words
}

func check(bufLen, valueBits, unitBits int) error {
	switch {
	case valueBits < 0 || unitBits < 0:
		return errors.InvalidInput(errors.PhaseAlign, fmt.Sprintf("negative width (value %d, unit %d)", valueBits, unitBits))
	case unitBits%8 != 0:
		return errors.InvalidInput(errors.PhaseAlign, fmt.Sprintf("unit of %d bits is not byte sized", unitBits))
	case valueBits > unitBits:
		return errors.New(errors.PhaseAlign, errors.KindOverflow).
			Value(valueBits).
			Detail("%d-bit value does not fit a %d-bit unit", valueBits, unitBits).
			Build()
	case bufLen*8 > unitBits:
		return errors.New(errors.PhaseAlign, errors.KindInvalidData).
			Detail("%d-byte buffer exceeds %d-bit unit", bufLen, unitBits).
			Build()
	}
	return nil
}

func pad(buf []byte, valueBits, elementBytes int) ([]byte, error) {
	if err := check(len(buf), valueBits, elementBytes*8); err != nil {
		return nil, err
	}
	out := make([]byte, elementBytes)
	copy(out, buf)
	return out, nil
}

func mask(x *big.Int, bits int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	m.Sub(m, big.NewInt(1))
	return x.And(x, m)
}

// leToInt reads buf as one little-endian unsigned integer.
func leToInt(buf []byte) *big.Int {
	be := make([]byte, len(buf))
	for i, b := range buf {
		be[len(buf)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// intToLE writes x as exactly n little-endian bytes, discarding higher bits.
func intToLE(x *big.Int, n int) []byte {
	be := x.Bytes()
	out := make([]byte, n)
	for i := 0; i < n && i < len(be); i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}
