// Package loopback provides an in-memory device that implements both
// fpgaruntime transports. Register writes are stored in a sparse word map
// and FIFO writes are queued per channel, so anything written can be read
// back. It stands in for real hardware in tests and in fpgactl browse.
package loopback

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	fpgaruntime "github.com/wippyai/fpga-runtime"
	"github.com/wippyai/fpga-runtime/errors"
)

var _ fpgaruntime.Transport = (*Device)(nil)

// Device is a loopback register file and FIFO set. Safe for concurrent use.
type Device struct {
	registers map[uint32]uint32
	fifos     map[uint32]*queue
	log       *zap.Logger
	mu        sync.Mutex
}

type queue struct {
	// notify is closed and replaced whenever data is appended.
	notify chan struct{}
	data   []byte
}

// New creates an empty device. Unwritten registers read as zero.
func New() *Device {
	return &Device{
		registers: make(map[uint32]uint32),
		fifos:     make(map[uint32]*queue),
		log:       Logger(),
	}
}

// ReadRegister copies len(words) consecutive words starting at offset.
func (d *Device) ReadRegister(ctx context.Context, offset uint32, words []uint32) error {
	if err := checkOffset(offset); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range words {
		words[i] = d.registers[offset+uint32(i)*4]
	}
	d.log.Debug("register read", zap.Uint32("offset", offset), zap.Int("words", len(words)))
	return nil
}

// WriteRegister stores words at offset, offset+4, ...
func (d *Device) WriteRegister(ctx context.Context, offset uint32, words []uint32) error {
	if err := checkOffset(offset); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range words {
		d.registers[offset+uint32(i)*4] = w
	}
	d.log.Debug("register write", zap.Uint32("offset", offset), zap.Int("words", len(words)))
	return nil
}

// ReadFifo blocks until len(buf) bytes are queued on channel or ctx is done.
// Partial data is never consumed.
func (d *Device) ReadFifo(ctx context.Context, channel uint32, elementBytes int, buf []byte) error {
	if err := checkElements(elementBytes, len(buf)); err != nil {
		return err
	}

	for {
		d.mu.Lock()
		q := d.queue(channel)
		if len(q.data) >= len(buf) {
			copy(buf, q.data)
			q.data = q.data[len(buf):]
			d.mu.Unlock()
			d.log.Debug("fifo read",
				zap.Uint32("channel", channel),
				zap.Int("elements", len(buf)/elementBytes))
			return nil
		}
		wait := q.notify
		d.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wait:
		}
	}
}

// WriteFifo appends data to the channel queue.
func (d *Device) WriteFifo(ctx context.Context, channel uint32, elementBytes int, data []byte) error {
	if err := checkElements(elementBytes, len(data)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	d.Inject(channel, data)
	d.log.Debug("fifo write",
		zap.Uint32("channel", channel),
		zap.Int("elements", len(data)/elementBytes))
	return nil
}

// Inject queues raw bytes on a channel as if the hardware had produced them.
func (d *Device) Inject(channel uint32, raw []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := d.queue(channel)
	q.data = append(q.data, raw...)
	close(q.notify)
	q.notify = make(chan struct{})
}

// Drain removes and returns everything queued on a channel.
func (d *Device) Drain(channel uint32) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	q, ok := d.fifos[channel]
	if !ok {
		return nil
	}
	out := q.data
	q.data = nil
	return out
}

// Pending returns the number of queued bytes on a channel.
func (d *Device) Pending(channel uint32) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if q, ok := d.fifos[channel]; ok {
		return len(q.data)
	}
	return 0
}

// Reset clears all registers and queues. Blocked readers keep waiting.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.registers)
	for _, q := range d.fifos {
		q.data = nil
	}
}

// queue returns the channel queue, creating it. Caller holds d.mu.
func (d *Device) queue(channel uint32) *queue {
	q, ok := d.fifos[channel]
	if !ok {
		q = &queue{notify: make(chan struct{})}
		d.fifos[channel] = q
	}
	return q
}

func checkOffset(offset uint32) error {
	if offset%4 != 0 {
		return errors.New(errors.PhaseTransfer, errors.KindInvalidInput).
			Value(offset).
			Detail("register offset 0x%x is not word aligned", offset).
			Build()
	}
	return nil
}

func checkElements(elementBytes, n int) error {
	if elementBytes <= 0 {
		return errors.InvalidInput(errors.PhaseTransfer, fmt.Sprintf("element size %d", elementBytes))
	}
	if n%elementBytes != 0 {
		return errors.InvalidInput(errors.PhaseTransfer,
			fmt.Sprintf("%d bytes is not a whole number of %d-byte elements", n, elementBytes))
	}
	return nil
}
