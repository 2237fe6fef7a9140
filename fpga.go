package fpgaruntime

import "context"

// RegisterTransport moves raw 32-bit words to and from the device's
// register space. offset is the absolute byte address of the first word.
type RegisterTransport interface {
	ReadRegister(ctx context.Context, offset uint32, words []uint32) error
	WriteRegister(ctx context.Context, offset uint32, words []uint32) error
}

// FifoTransport moves whole stream elements through a DMA channel. buf and
// data are always a multiple of elementBytes long. ReadFifo blocks until buf
// is filled or ctx is done.
type FifoTransport interface {
	ReadFifo(ctx context.Context, channel uint32, elementBytes int, buf []byte) error
	WriteFifo(ctx context.Context, channel uint32, elementBytes int, data []byte) error
}

// Transport is a device reachable through both registers and FIFOs.
type Transport interface {
	RegisterTransport
	FifoTransport
}
