// Package registry turns a descriptor document into name tables of typed
// register and FIFO handles.
//
// Every definition is built independently. A definition whose type cannot
// be modeled is logged at Warn and left out, so one exotic control never
// prevents access to the rest of the design:
//
//	reg := registry.New(doc)
//	for _, o := range reg.Omitted() {
//	    fmt.Println("unavailable:", o.Name, o.Err)
//	}
//
// Tables are insert-once and read-only after New, so a Registry and its
// handles may be shared between goroutines.
package registry

import (
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/fpga-runtime/bitfile"
	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/transcoder"
	"github.com/wippyai/fpga-runtime/types"
)

// Omission records a definition that was left out of the tables.
type Omission struct {
	Err  error
	Name string
	Kind string // "register" or "fifo"
}

// Registry maps names to register and FIFO handles.
type Registry struct {
	registers map[string]*Register
	fifos     map[string]*Fifo
	log       *zap.Logger
	signature string
	omitted   []Omission
	config    Config
}

// New builds the tables for doc. It never fails; see Omitted.
func New(doc *bitfile.Document, opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = Logger()
	}

	r := &Registry{
		registers: make(map[string]*Register),
		fifos:     make(map[string]*Fifo),
		log:       cfg.Logger,
		config:    cfg,
	}
	if doc == nil {
		return r
	}
	r.signature = doc.Signature

	for _, def := range doc.Registers {
		r.addRegister(def)
	}
	for _, def := range doc.Channels {
		r.addFifo(def)
	}

	r.log.Debug("registry built",
		zap.String("signature", r.signature),
		zap.Int("registers", len(r.registers)),
		zap.Int("fifos", len(r.fifos)),
		zap.Int("omitted", len(r.omitted)))
	return r
}

func (r *Registry) addRegister(def bitfile.Register) {
	if def.Internal && !r.config.IncludeInternal {
		r.log.Debug("skipping internal register", zap.String("name", def.Name))
		return
	}
	if _, exists := r.registers[def.Name]; exists {
		r.log.Warn("duplicate register definition ignored", zap.String("name", def.Name))
		return
	}

	d, err := types.Build(def.Type)
	if err != nil {
		r.omit(def.Name, "register", err)
		return
	}

	r.registers[def.Name] = &Register{
		desc:      d,
		name:      def.Name,
		offset:    def.Offset,
		words:     transcoder.RegisterWords(d),
		indicator: def.Indicator,
	}
}

func (r *Registry) addFifo(def bitfile.Channel) {
	if !def.UserVisible {
		r.log.Debug("skipping hidden channel", zap.String("name", def.Name))
		return
	}
	if _, exists := r.fifos[def.Name]; exists {
		r.log.Warn("duplicate channel definition ignored", zap.String("name", def.Name))
		return
	}

	d, err := types.Build(def.Type)
	if err != nil {
		r.omit(def.Name, "fifo", err)
		return
	}

	declared := def.TransferSizeBytes
	if declared <= 0 && d.Kind() == types.KindFixedPoint {
		declared = r.config.FxpTransferBytes
	}
	elementBytes := transcoder.ElementBytes(d, declared)
	if d.BitWidth() > elementBytes*8 {
		r.omit(def.Name, "fifo", errors.New(errors.PhaseBuild, errors.KindUnsupportedType).
			HWType(d.String()).
			Detail("%d-bit values do not fit %d-byte elements", d.BitWidth(), elementBytes).
			Build())
		return
	}

	r.fifos[def.Name] = &Fifo{
		desc:         d,
		name:         def.Name,
		number:       def.Number,
		elementBytes: elementBytes,
		direction:    def.Direction,
	}
}

func (r *Registry) omit(name, kind string, err error) {
	r.log.Warn("unsupported definition omitted",
		zap.String("name", name),
		zap.String("kind", kind),
		zap.Error(err))
	r.omitted = append(r.omitted, Omission{Name: name, Kind: kind, Err: err})
}

// Signature returns the document signature.
func (r *Registry) Signature() string { return r.signature }

// Register looks up a register by name.
func (r *Registry) Register(name string) (*Register, error) {
	reg, ok := r.registers[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLookup, "register", name)
	}
	return reg, nil
}

// RegisterOf looks up a register and checks its descriptor kind.
func (r *Registry) RegisterOf(name string, kind types.Kind) (*Register, error) {
	reg, err := r.Register(name)
	if err != nil {
		return nil, err
	}
	if reg.desc.Kind() != kind {
		return nil, kindMismatch(name, kind, reg.desc)
	}
	return reg, nil
}

// Fifo looks up a FIFO by name.
func (r *Registry) Fifo(name string) (*Fifo, error) {
	f, ok := r.fifos[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLookup, "fifo", name)
	}
	return f, nil
}

// FifoOf looks up a FIFO and checks its element descriptor kind.
func (r *Registry) FifoOf(name string, kind types.Kind) (*Fifo, error) {
	f, err := r.Fifo(name)
	if err != nil {
		return nil, err
	}
	if f.desc.Kind() != kind {
		return nil, kindMismatch(name, kind, f.desc)
	}
	return f, nil
}

// RegisterNames returns the register names in sorted order.
func (r *Registry) RegisterNames() []string {
	return sortedKeys(r.registers)
}

// FifoNames returns the FIFO names in sorted order.
func (r *Registry) FifoNames() []string {
	return sortedKeys(r.fifos)
}

// Omitted returns the definitions left out because their types are
// unsupported, in document order.
func (r *Registry) Omitted() []Omission {
	return slices.Clone(r.omitted)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func kindMismatch(name string, want types.Kind, have types.Descriptor) error {
	return errors.New(errors.PhaseLookup, errors.KindTypeMismatch).
		Path(name).
		GoType(want.String()).
		HWType(have.String()).
		Build()
}
