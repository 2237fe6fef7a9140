package bitfile

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

type yamlDocument struct {
	Name        string         `yaml:"name"`
	Signature   string         `yaml:"signature"`
	Registers   []yamlRegister `yaml:"registers"`
	Channels    []yamlChannel  `yaml:"channels"`
	BaseAddress uint32         `yaml:"base_address"`
}

type yamlRegister struct {
	Type             *types.Node `yaml:"type"`
	Name             string      `yaml:"name"`
	Offset           uint32      `yaml:"offset"`
	Indicator        bool        `yaml:"indicator"`
	Internal         bool        `yaml:"internal"`
	AccessMayTimeout bool        `yaml:"access_may_timeout"`
}

type yamlChannel struct {
	Type              *types.Node `yaml:"type"`
	UserVisible       *bool       `yaml:"user_visible"`
	Name              string      `yaml:"name"`
	Direction         Direction   `yaml:"direction"`
	Number            uint32      `yaml:"number"`
	TransferSizeBytes int         `yaml:"transfer_size_bytes"`
}

// ParseYAML reads a YAML descriptor document:
//
//	name: Main.vi
//	signature: 5F2E...
//	base_address: 0x18000
//	registers:
//	  - name: Gain
//	    offset: 0x4
//	    type: {tag: FXP, signed: true, word_length: 16, integer_word_length: 8}
//	channels:
//	  - name: Samples
//	    number: 0
//	    direction: TargetToHost
//	    type: {tag: I16}
//
// Offsets are relative to base_address. user_visible defaults to true.
func ParseYAML(r io.Reader) (*Document, error) {
	var raw yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, errors.ParseFailed("yaml descriptor", err)
	}

	doc := &Document{
		Name:        raw.Name,
		Signature:   raw.Signature,
		BaseAddress: raw.BaseAddress,
	}
	for _, reg := range raw.Registers {
		doc.Registers = append(doc.Registers, Register{
			Type:             reg.Type,
			Name:             reg.Name,
			Offset:           raw.BaseAddress + reg.Offset,
			Indicator:        reg.Indicator,
			Internal:         reg.Internal,
			AccessMayTimeout: reg.AccessMayTimeout,
		})
	}
	for _, ch := range raw.Channels {
		if !ch.Direction.valid() {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path(ch.Name).
				Detail("unknown channel direction %q", ch.Direction).
				Build()
		}
		doc.Channels = append(doc.Channels, Channel{
			Type:              ch.Type,
			Name:              ch.Name,
			Direction:         ch.Direction,
			Number:            ch.Number,
			TransferSizeBytes: ch.TransferSizeBytes,
			UserVisible:       ch.UserVisible == nil || *ch.UserVisible,
		})
	}
	return doc, nil
}
