// Package fpgaruntime exchanges structured values with a reconfigurable
// hardware target whose registers and DMA channels carry only raw words.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	fpgaruntime/         Root package with the RegisterTransport and FifoTransport interfaces
//	├── types/           Hardware type descriptors built from the compiled type tree
//	├── transcoder/      Bit-exact pack/unpack and register/stream transfer helpers
//	├── align/           Transfer unit alignment and stream byte order
//	├── bitfile/         Descriptor document loading (XML bitfile, YAML)
//	├── typeexpr/        Compact textual type notation
//	├── registry/        Name tables of typed register and FIFO handles
//	├── loopback/        In-memory device for tests and simulation
//	├── errors/          Structured error types for debugging
//	└── cmd/fpgactl/     Command line inspection and encoding tool
//
// # Quick Start
//
// Load a descriptor document and talk to a device:
//
//	doc, err := bitfile.Open("accelerator.lvbitx")
//	if err != nil {
//	    return err
//	}
//	reg := registry.New(doc, registry.WithLogger(log))
//
//	gain, err := reg.RegisterOf("Gain", types.KindFixedPoint)
//	if err != nil {
//	    return err
//	}
//	if err := gain.Write(ctx, dev, "1.25"); err != nil {
//	    return err
//	}
//
//	samples, err := reg.Fifo("Samples")
//	if err != nil {
//	    return err
//	}
//	values, err := samples.Read(ctx, dev, 512)
//
// dev is any Transport. Opening a hardware session, downloading the
// bitstream and waiting on interrupts are the transport's business.
//
// # Encoding Without a Device
//
// The codec works on descriptors alone:
//
//	d, _ := typeexpr.Descriptor("cluster{status: bool, code: i32, source: string}")
//	raw, _ := transcoder.Pack(d, map[string]any{"status": true, "code": -1})
//	words, _ := transcoder.PackRegister(d, map[string]any{"status": true, "code": -1})
//
// # Error Handling
//
// All errors are *errors.Error values carrying the phase, kind and value
// path:
//
//	[lookup] type_mismatch: Go type fxp, HW type u16
//	[pack] array_length_mismatch at samples: expected 4 elements, got 3
package fpgaruntime
