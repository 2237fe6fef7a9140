// Command fpgactl inspects hardware descriptor documents and converts values
// to and from the bit patterns stored in registers and DMA FIFOs.
//
// Usage:
//
//	fpgactl inspect accelerator.lvbitx
//	fpgactl pack -t 'fxp<s,16,8>' --register 1.25
//	fpgactl unpack -t '[2]u8' '22 11'
//	fpgactl browse accelerator.lvbitx
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
