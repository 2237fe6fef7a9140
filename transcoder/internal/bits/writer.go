package bits

import (
	"math"
	"math/big"
)

// Writer appends fields to a growing byte buffer.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns a writer with room for sizeHint bits before it grows.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, (sizeHint+7)/8)}
}

// Pos returns the number of bits written so far.
func (w *Writer) Pos() int { return w.pos }

// Bytes returns the written bytes. The final byte is zero-padded.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) put(bit uint64) {
	idx := w.pos >> 3
	if idx >= len(w.buf) {
		w.buf = append(w.buf, 0)
	}
	w.buf[idx] |= byte(bit&1) << uint(w.pos&7)
	w.pos++
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.put(1)
	} else {
		w.put(0)
	}
}

// WriteUint writes the low n bits of v.
func (w *Writer) WriteUint(v uint64, n int) {
	for i := 0; i < n; i++ {
		w.put(v >> uint(i))
	}
}

// WriteInt writes the low n bits of v's two's-complement form.
func (w *Writer) WriteInt(v int64, n int) {
	w.WriteUint(uint64(v), n)
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint(uint64(math.Float32bits(v)), 32)
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint(math.Float64bits(v), 64)
}

// WriteFixedPoint writes round(v/delta) as a word-length integer. Ties round
// to even. The caller clamps v to the representable range first; anything
// outside it wraps modulo 2^wordLength.
func (w *Writer) WriteFixedPoint(v *big.Rat, wordLength int, delta *big.Rat) {
	q := Quantize(v, delta)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(wordLength))
	q.Mod(q, mod)
	w.WriteUint(q.Uint64(), wordLength)
}

// Quantize returns v/delta rounded to the nearest integer, ties to even.
func Quantize(v, delta *big.Rat) *big.Int {
	x := new(big.Rat).Quo(v, delta)
	num, den := x.Num(), x.Denom()

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() == 0 {
		return q
	}

	twice := new(big.Int).Abs(rem)
	twice.Lsh(twice, 1)
	c := twice.Cmp(den)
	if c > 0 || (c == 0 && q.Bit(0) == 1) {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}
