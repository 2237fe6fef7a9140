package registry

import (
	"context"
	"fmt"
	"reflect"

	fpgaruntime "github.com/wippyai/fpga-runtime"
	"github.com/wippyai/fpga-runtime/bitfile"
	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/transcoder"
	"github.com/wippyai/fpga-runtime/types"
)

// Register is a typed handle to one register.
type Register struct {
	desc      types.Descriptor
	name      string
	offset    uint32
	words     int
	indicator bool
}

func (r *Register) Name() string                 { return r.name }
func (r *Register) Offset() uint32               { return r.offset }
func (r *Register) Words() int                   { return r.words }
func (r *Register) Descriptor() types.Descriptor { return r.desc }

// Indicator reports whether the hardware writes this register. Host writes
// to indicators are still allowed.
func (r *Register) Indicator() bool { return r.indicator }

// Read fetches and decodes the register value.
func (r *Register) Read(ctx context.Context, t fpgaruntime.RegisterTransport) (any, error) {
	words := make([]uint32, r.words)
	if err := t.ReadRegister(ctx, r.offset, words); err != nil {
		return nil, errors.Transfer("read register "+r.name, err)
	}
	v, err := transcoder.UnpackRegister(r.desc, words)
	if err != nil {
		return nil, withRoot(err, r.name)
	}
	return v, nil
}

// Write encodes v and stores it in the register.
func (r *Register) Write(ctx context.Context, t fpgaruntime.RegisterTransport, v any) error {
	words, err := transcoder.PackRegister(r.desc, v)
	if err != nil {
		return withRoot(err, r.name)
	}
	if err := t.WriteRegister(ctx, r.offset, words); err != nil {
		return errors.Transfer("write register "+r.name, err)
	}
	return nil
}

// Fifo is a typed handle to one DMA channel.
type Fifo struct {
	desc         types.Descriptor
	name         string
	direction    bitfile.Direction
	number       uint32
	elementBytes int
}

func (f *Fifo) Name() string                 { return f.name }
func (f *Fifo) Number() uint32               { return f.number }
func (f *Fifo) ElementBytes() int            { return f.elementBytes }
func (f *Fifo) Direction() bitfile.Direction { return f.direction }
func (f *Fifo) Descriptor() types.Descriptor { return f.desc }

// Read blocks until n elements arrive and decodes them.
func (f *Fifo) Read(ctx context.Context, t fpgaruntime.FifoTransport, n int) ([]any, error) {
	if f.direction != bitfile.TargetToHost {
		return nil, f.wrongDirection("read")
	}
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseTransfer, fmt.Sprintf("negative element count %d", n))
	}
	buf := make([]byte, n*f.elementBytes)
	if n > 0 {
		if err := t.ReadFifo(ctx, f.number, f.elementBytes, buf); err != nil {
			return nil, errors.Transfer("read fifo "+f.name, err)
		}
	}
	values, err := transcoder.UnpackStream(f.desc, f.elementBytes, buf)
	if err != nil {
		return nil, withRoot(err, f.name)
	}
	return values, nil
}

// Write encodes values and sends them as one transfer.
func (f *Fifo) Write(ctx context.Context, t fpgaruntime.FifoTransport, values []any) error {
	if f.direction != bitfile.HostToTarget {
		return f.wrongDirection("write")
	}
	data, err := transcoder.PackStream(f.desc, f.elementBytes, values)
	if err != nil {
		return withRoot(err, f.name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := t.WriteFifo(ctx, f.number, f.elementBytes, data); err != nil {
		return errors.Transfer("write fifo "+f.name, err)
	}
	return nil
}

func (f *Fifo) wrongDirection(op string) error {
	return errors.New(errors.PhaseTransfer, errors.KindInvalidInput).
		Path(f.name).
		Detail("cannot %s %s fifo", op, f.direction).
		Build()
}

// ReadAs reads a register and asserts the Go type of its value. A T that
// the register type can never decode to fails before any transfer.
func ReadAs[T any](ctx context.Context, r *Register, t fpgaruntime.RegisterTransport) (T, error) {
	var zero T
	if err := checkGoType[T](r.desc, r.name); err != nil {
		return zero, err
	}
	v, err := r.Read(ctx, t)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseUnpack, []string{r.name}, reflect.TypeFor[T]().String(), r.desc.String())
	}
	return typed, nil
}

// ReadFifoAs reads n elements and asserts the Go type of each. Like ReadAs
// it rejects an impossible T without draining the channel.
func ReadFifoAs[T any](ctx context.Context, f *Fifo, t fpgaruntime.FifoTransport, n int) ([]T, error) {
	if err := checkGoType[T](f.desc, f.name); err != nil {
		return nil, err
	}
	values, err := f.Read(ctx, t, n)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(values))
	for i, v := range values {
		typed, ok := v.(T)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseUnpack, []string{f.name, errors.Index(i)}, reflect.TypeFor[T]().String(), f.desc.String())
		}
		out[i] = typed
	}
	return out, nil
}

func checkGoType[T any](d types.Descriptor, name string) error {
	want := reflect.TypeFor[T]()
	if have := transcoder.GoType(d); have != nil && have.AssignableTo(want) {
		return nil
	}
	hw := "<nil>"
	if d != nil {
		hw = d.String()
	}
	return errors.TypeMismatch(errors.PhaseLookup, []string{name}, want.String(), hw)
}

// withRoot prefixes a codec error path with the handle name.
func withRoot(err error, name string) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append([]string{name}, e.Path...)
	}
	return err
}
