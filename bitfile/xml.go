package bitfile

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

type xmlBitfile struct {
	XMLName   xml.Name `xml:"Bitfile"`
	Signature string   `xml:"SignatureRegister"`
	VI        struct {
		Name      string        `xml:"Name"`
		Registers []xmlRegister `xml:"RegisterList>Register"`
	} `xml:"VI"`
	NiFpga struct {
		Channels    []xmlChannel `xml:"DmaChannelAllocationList>Channel"`
		BaseAddress uint32       `xml:"BaseAddressOnDevice"`
	} `xml:"Project>CompilationResultsTree>CompilationResults>NiFpga"`
}

type xmlRegister struct {
	Datatype         xmlDatatype `xml:"Datatype"`
	Name             string      `xml:"Name"`
	Offset           uint32      `xml:"Offset"`
	Indicator        bool        `xml:"Indicator"`
	Internal         bool        `xml:"Internal"`
	AccessMayTimeout bool        `xml:"AccessMayTimeout"`
}

type xmlChannel struct {
	UserVisible *bool          `xml:"UserVisible"`
	DataType    xmlChannelType `xml:"DataType"`
	Name        string         `xml:"name,attr"`
	Direction   string         `xml:"Direction"`
	Number      uint32         `xml:"Number"`
}

// Parse reads an XML bitfile.
func Parse(r io.Reader) (*Document, error) {
	var raw xmlBitfile
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.ParseFailed("bitfile", err)
	}

	doc := &Document{
		Name:        raw.VI.Name,
		Signature:   strings.TrimSpace(raw.Signature),
		BaseAddress: raw.NiFpga.BaseAddress,
	}
	for _, reg := range raw.VI.Registers {
		doc.Registers = append(doc.Registers, Register{
			Type:             reg.Datatype.node,
			Name:             reg.Name,
			Offset:           doc.BaseAddress + reg.Offset,
			Indicator:        reg.Indicator,
			Internal:         reg.Internal,
			AccessMayTimeout: reg.AccessMayTimeout,
		})
	}
	for _, ch := range raw.NiFpga.Channels {
		dir := Direction(strings.TrimSpace(ch.Direction))
		if !dir.valid() {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path(ch.Name).
				Detail("unknown channel direction %q", ch.Direction).
				Build()
		}
		doc.Channels = append(doc.Channels, Channel{
			Type:              ch.DataType.node,
			Name:              ch.Name,
			Direction:         dir,
			Number:            ch.Number,
			TransferSizeBytes: ch.DataType.transferSize,
			UserVisible:       ch.UserVisible == nil || *ch.UserVisible,
		})
	}
	return doc, nil
}

// xmlDatatype wraps exactly one type element, whose name is its tag.
type xmlDatatype struct {
	node *types.Node
}

func (x *xmlDatatype) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if x.node != nil {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if x.node, err = decodeType(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// xmlChannelType accepts a nested type element or the flattened form where
// SubType names the tag and the fixed-point parameters are siblings.
type xmlChannelType struct {
	node         *types.Node
	transferSize int
}

func (x *xmlChannelType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	flat := &types.Node{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "SubType":
				if flat.Tag, err = text(d, t); err != nil {
					return err
				}
			case "TransferSizeBytes":
				if x.transferSize, err = intText(d, t); err != nil {
					return err
				}
			case "Signed", "WordLength", "IntegerWordLength", "IncludeOverflowStatus", "Size":
				if err := scalarField(d, t, flat); err != nil {
					return err
				}
			case "Delta", "Minimum", "Maximum":
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if x.node, err = decodeType(d, t); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if x.node == nil && flat.Tag != "" {
				x.node = flat
			}
			return nil
		}
	}
}

// decodeType reads one type element. start has already been consumed.
func decodeType(d *xml.Decoder, start xml.StartElement) (*types.Node, error) {
	n := &types.Node{Tag: start.Name.Local}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Name":
				if n.Name, err = text(d, t); err != nil {
					return nil, err
				}
			case "Signed", "WordLength", "IntegerWordLength", "IncludeOverflowStatus", "Size":
				if err := scalarField(d, t, n); err != nil {
					return nil, err
				}
			case "Type":
				var inner xmlDatatype
				if err := inner.UnmarshalXML(d, t); err != nil {
					return nil, err
				}
				n.Element = inner.node
			case "TypeList":
				if n.Fields, err = decodeTypeList(d); err != nil {
					return nil, err
				}
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return n, nil
		}
	}
}

func decodeTypeList(d *xml.Decoder) ([]*types.Node, error) {
	var out []*types.Node
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n, err := decodeType(d, t)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		case xml.EndElement:
			return out, nil
		}
	}
}

func scalarField(d *xml.Decoder, start xml.StartElement, n *types.Node) error {
	var err error
	switch start.Name.Local {
	case "Signed":
		n.Signed, err = boolText(d, start)
	case "IncludeOverflowStatus":
		n.IncludeOverflowStatus, err = boolText(d, start)
	case "WordLength":
		n.WordLength, err = intText(d, start)
	case "IntegerWordLength":
		n.IntegerWordLength, err = intText(d, start)
	case "Size":
		n.Size, err = intText(d, start)
	}
	return err
}

func text(d *xml.Decoder, start xml.StartElement) (string, error) {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func intText(d *xml.Decoder, start xml.StartElement) (int, error) {
	s, err := text(d, start)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, start.Name.Local)
	}
	return v, nil
}

func boolText(d *xml.Decoder, start xml.StartElement) (bool, error) {
	s, err := text(d, start)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, start.Name.Local)
	}
	return v, nil
}
