package bits

import (
	"math"
	"math/big"
)

// Reader consumes fields from a byte buffer.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the number of bits consumed so far.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) next() uint64 {
	idx := r.pos >> 3
	shift := uint(r.pos & 7)
	r.pos++
	if idx >= len(r.buf) {
		return 0
	}
	return uint64(r.buf[idx]>>shift) & 1
}

func (r *Reader) ReadBool() bool {
	return r.next() == 1
}

// ReadUint reads an unsigned field of n bits (n <= 64).
func (r *Reader) ReadUint(n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v |= r.next() << uint(i)
	}
	return v
}

// ReadInt reads a two's-complement field of n bits and sign-extends it.
func (r *Reader) ReadInt(n int) int64 {
	return SignExtend(r.ReadUint(n), n)
}

func (r *Reader) ReadFloat32() float32 {
	return math.Float32frombits(uint32(r.ReadUint(32)))
}

func (r *Reader) ReadFloat64() float64 {
	return math.Float64frombits(r.ReadUint(64))
}

// ReadFixedPoint reads a word-length integer and scales it by delta exactly.
func (r *Reader) ReadFixedPoint(wordLength int, signed bool, delta *big.Rat) *big.Rat {
	raw := new(big.Rat)
	if signed {
		raw.SetInt64(r.ReadInt(wordLength))
	} else {
		raw.SetUint64(r.ReadUint(wordLength))
	}
	return raw.Mul(raw, delta)
}

// SignExtend treats bit n-1 of v as the sign bit.
func SignExtend(v uint64, n int) int64 {
	if n > 0 && n < 64 && v>>(n-1)&1 == 1 {
		v |= ^uint64(0) << n
	}
	return int64(v)
}
