package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhasePack,
				Kind:   KindTypeMismatch,
				Path:   []string{"status", "code"},
				GoType: "string",
				HWType: "i32",
				Detail: "cannot convert",
			},
			contains: []string{"[pack]", "type_mismatch", "status.code", "string", "i32", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseUnpack,
				Kind:  KindInvalidData,
			},
			contains: []string{"[unpack]", "invalid_data"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseTransfer,
				Kind:   KindInvalidData,
				Detail: "read register",
				Cause:  errors.New("device gone"),
			},
			contains: []string{"[transfer]", "invalid_data", "read register", "caused by", "device gone"},
		},
		{
			name: "index path",
			err: &Error{
				Phase: PhasePack,
				Kind:  KindOverflow,
				Path:  []string{"samples", "[3]", "gain"},
			},
			contains: []string{"samples[3].gain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseTransfer,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhasePack,
		Kind:  KindFieldMissing,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhasePack, Kind: KindFieldMissing}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseUnpack, Kind: KindFieldMissing}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhasePack, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("write register: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhasePack, Kind: KindFieldMissing}) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestIsKind(t *testing.T) {
	inner := UnsupportedType(PhaseBuild, []string{"pair", "z"}, "CFXP")
	outer := Wrap(PhaseLoad, KindInvalidData, inner, "register \"pair\"")

	if !IsKind(outer, KindUnsupportedType) {
		t.Error("IsKind should find kind in cause chain")
	}
	if !IsKind(outer, KindInvalidData) {
		t.Error("IsKind should match outermost kind")
	}
	if IsKind(outer, KindDuplicateField) {
		t.Error("IsKind matched an absent kind")
	}
	if IsKind(errors.New("plain"), KindInvalidData) {
		t.Error("IsKind matched a non-structured error")
	}
	if IsKind(nil, KindInvalidData) {
		t.Error("IsKind matched nil")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhasePack, KindTypeMismatch).
		Path("status", "code").
		GoType("string").
		HWType("i32").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "i32", "string").
		Build()

	if err.Phase != PhasePack {
		t.Errorf("Phase = %v, want %v", err.Phase, PhasePack)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "status" || err.Path[1] != "code" {
		t.Errorf("Path = %v, want [status code]", err.Path)
	}
	if err.GoType != "string" || err.HWType != "i32" {
		t.Errorf("GoType=%v HWType=%v", err.GoType, err.HWType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected i32, got string" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
		text string
	}{
		{"UnsupportedType", UnsupportedType(PhaseBuild, nil, "CFXP"), KindUnsupportedType, "CFXP"},
		{"DuplicateField", DuplicateField(PhaseBuild, []string{"c"}, "a"), KindDuplicateField, `"a"`},
		{"FieldMissing", FieldMissing(PhasePack, []string{"c"}, "b"), KindFieldMissing, `"b"`},
		{"ArrayLengthMismatch", ArrayLengthMismatch(PhasePack, nil, 4, 3), KindArrayLengthMismatch, "expected 4 elements, got 3"},
		{"TypeMismatch", TypeMismatch(PhaseLookup, nil, "u8", "cluster"), KindTypeMismatch, "cluster"},
		{"Overflow", Overflow(PhasePack, nil, 300, "u8"), KindOverflow, "300 overflows u8"},
		{"InvalidData", InvalidData(PhaseUnpack, nil, "short buffer"), KindInvalidData, "short buffer"},
		{"InvalidInput", InvalidInput(PhaseAlign, "bad width"), KindInvalidInput, "bad width"},
		{"NotFound", NotFound(PhaseLookup, "register", "Count"), KindNotFound, `register "Count" not found`},
		{"Transfer", Transfer("read fifo", errors.New("timeout")), KindInvalidData, "timeout"},
		{"ParseFailed", ParseFailed("bitfile", errors.New("eof")), KindInvalidData, "parse bitfile"},
		{"Load", Load("open", errors.New("missing")), KindInvalidData, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.text) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.text)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a.b"},
		{[]string{"a", Index(2)}, "a[2]"},
		{[]string{"a", Index(2), Index(0), "b"}, "a[2][0].b"},
		{[]string{Index(1), "x"}, "[1].x"},
	}
	for _, tt := range tests {
		if got := JoinPath(tt.path); got != tt.want {
			t.Errorf("JoinPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
