// Package bitfile loads the descriptor document that accompanies a compiled
// hardware image: its signature, its registers and its DMA channels, each
// with the type tree the hardware was compiled against.
//
// Two container formats are supported. The XML bitfile is the compiler's
// native output; the YAML form carries the same content for hand-written
// fixtures and simulation. Both produce the same Document. Type trees are
// returned unbuilt so that one bad definition does not prevent loading the
// rest; see package registry.
package bitfile

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

// Direction is the data flow of a DMA channel.
type Direction string

const (
	TargetToHost Direction = "TargetToHost"
	HostToTarget Direction = "HostToTarget"
)

func (d Direction) valid() bool {
	return d == TargetToHost || d == HostToTarget
}

// Document is the parsed content of a descriptor document.
type Document struct {
	Name        string
	Signature   string
	Registers   []Register
	Channels    []Channel
	BaseAddress uint32
}

// Register is one front-panel control or indicator.
type Register struct {
	Type             *types.Node
	Name             string
	Offset           uint32 // absolute: base address plus declared offset
	Indicator        bool
	Internal         bool
	AccessMayTimeout bool
}

// Channel is one DMA FIFO.
type Channel struct {
	Type              *types.Node
	Name              string
	Direction         Direction
	Number            uint32
	TransferSizeBytes int // 0 when not declared
	UserVisible       bool
}

// Open loads a document from disk. Files ending in .yaml or .yml are read as
// YAML, everything else as an XML bitfile.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Load("open "+path, err)
	}
	defer f.Close()

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(f)
	default:
		doc, err = Parse(f)
	}
	if err != nil {
		return nil, err
	}

	Logger().Debug("loaded descriptor document",
		zap.String("path", path),
		zap.String("name", doc.Name),
		zap.Int("registers", len(doc.Registers)),
		zap.Int("channels", len(doc.Channels)))
	return doc, nil
}
