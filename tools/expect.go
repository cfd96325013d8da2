package tools

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/Comcast/moore/core"
)

// IO is one scenario: an input sequence and what should come of it.
type IO[O any] struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Input is a plain string to tokenize with Machine.Symbols.
	// Ignored when Symbols is given.
	Input string `json:"input,omitempty" yaml:"input,omitempty"`

	// Symbols are the input symbols to Process.
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`

	// Error, if not empty, is the kind of error Process must
	// return: "invalidState", "invalidSymbol", or "noTransition".
	// The remaining fields are then ignored.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Accepted is whether the final state must accept.
	Accepted bool `json:"accepted,omitempty" yaml:"accepted,omitempty"`

	// Output is the required final output.  Nil means the final
	// state must have no output.
	Output *O `json:"output,omitempty" yaml:"output,omitempty"`

	// FinalState, if not empty, is the required final state.
	FinalState string `json:"finalState,omitempty" yaml:"finalState,omitempty"`
}

// Session is mostly a sequence of IOs.
//
// A Session is handy as YAML next to a machine config: declarative
// scenarios that document and check the machine's behavior.
type Session[O any] struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// IOs is the sequence of scenarios this session will run.
	IOs []IO[O] `json:"ios" yaml:"ios"`
}

// Run processes all the IOs in the Session against the given machine.
//
// The first scenario that doesn't turn out as required is reported as
// an error.  Each scenario Processes from the initial state, so
// scenario order doesn't matter.
func (s *Session[O]) Run(m *core.Machine[O]) error {
	for i, io := range s.IOs {
		if err := io.run(m); err != nil {
			label := io.Doc
			if label == "" {
				label = fmt.Sprintf("io %d", i)
			}
			return fmt.Errorf("%s: %w", label, err)
		}
	}
	return nil
}

func (io *IO[O]) run(m *core.Machine[O]) error {
	symbols := io.Symbols
	if symbols == nil {
		symbols = m.Symbols(io.Input)
	}

	r, err := m.Process(symbols...)

	if io.Error != "" {
		if kind := errKind(err); kind != io.Error {
			return fmt.Errorf(`wanted a "%s" error but got %v`, io.Error, err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if r.Accepted != io.Accepted {
		return fmt.Errorf("wanted accepted=%v but got %v", io.Accepted, r.Accepted)
	}
	if io.FinalState != "" && r.FinalState != io.FinalState {
		return fmt.Errorf(`wanted final state "%s" but got "%s"`, io.FinalState, r.FinalState)
	}
	switch {
	case io.Output == nil && r.Output != nil:
		return fmt.Errorf("wanted no output but got %#v", *r.Output)
	case io.Output != nil && r.Output == nil:
		return fmt.Errorf("wanted output %#v but got none", *io.Output)
	case io.Output != nil && !reflect.DeepEqual(*io.Output, *r.Output):
		return fmt.Errorf("wanted output %#v but got %#v", *io.Output, *r.Output)
	}

	return nil
}

// errKind names the error's kind for IO.Error matching.
func errKind(err error) string {
	if err == nil {
		return ""
	}
	var (
		state      *core.InvalidState
		symbol     *core.InvalidSymbol
		transition *core.NoTransition
	)
	switch {
	case errors.As(err, &state):
		return "invalidState"
	case errors.As(err, &symbol):
		return "invalidSymbol"
	case errors.As(err, &transition):
		return "noTransition"
	}
	return "unknown"
}
