package core

import "encoding/json"

// Config is the declarative structure used to build a Machine.
//
// A Config gives the structure of the machine.  This data does not
// include any state (such as the machine's current state).
//
// The sequences are ordered as given, and that order is preserved by
// Machine.Structure().  De-duplication of States, Alphabet, and
// AcceptingStates uses set semantics: later duplicates are dropped.
//
// The output type O is whatever the caller wants.  A state with no
// Outputs entry has no output at all, which is not the same thing as
// having the zero O.
type Config[O any] struct {
	// Name is the generic name for this machine.  Something like
	// "traffic-light".
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Version is the version of this generic machine.  Something
	// like "1.2".
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Doc is general documentation about how this machine works.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// States is the finite set of state names.
	States []string `json:"states" yaml:"states"`

	// Alphabet is the finite set of input symbols.
	//
	// A symbol is an opaque token.  It's usually a single
	// character, but multi-character symbols like "Next" are
	// fine.  See Machine.Symbols for how a plain string is read
	// as a symbol sequence.
	Alphabet []string `json:"alphabet" yaml:"alphabet"`

	// InitialState must be one of States.
	InitialState string `json:"initialState" yaml:"initialState"`

	// AcceptingStates is the subset of States that mark
	// successful recognition of an input sequence.
	AcceptingStates []string `json:"acceptingStates,omitempty" yaml:"acceptingStates,omitempty"`

	// Transitions is the transition relation: a partial function
	// from (state, symbol) to the next state.
	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`

	// Outputs is the (partial) Moore output function from state
	// to output value.
	Outputs []Output[O] `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	// AllowRedefinition permits duplicate Transitions pairs and
	// duplicate Outputs states, with the last entry winning.
	//
	// Off by default: a duplicate is a ConflictingDefinition
	// error, since a silent overwrite usually hides a config bug.
	AllowRedefinition bool `json:"allowRedefinition,omitempty" yaml:"allowRedefinition,omitempty"`
}

// Transition is one row of the transition relation.
type Transition struct {
	// From is the name of the source state.
	From string `json:"from" yaml:"from"`

	// On is the input symbol that triggers this transition.
	On string `json:"on" yaml:"on"`

	// To is the name of the destination state.
	To string `json:"to" yaml:"to"`
}

// Output associates a state with its (Moore) output value.
type Output[O any] struct {
	State string `json:"state" yaml:"state"`
	Value O      `json:"value" yaml:"value"`
}

// Copy makes a deep copy of the Config.
//
// Output values themselves are not copied.
func (c *Config[O]) Copy() *Config[O] {
	states := make([]string, len(c.States))
	copy(states, c.States)
	alphabet := make([]string, len(c.Alphabet))
	copy(alphabet, c.Alphabet)
	accepting := make([]string, len(c.AcceptingStates))
	copy(accepting, c.AcceptingStates)
	transitions := make([]Transition, len(c.Transitions))
	copy(transitions, c.Transitions)
	outputs := make([]Output[O], len(c.Outputs))
	copy(outputs, c.Outputs)

	return &Config[O]{
		Name:              c.Name,
		Version:           c.Version,
		Doc:               c.Doc,
		States:            states,
		Alphabet:          alphabet,
		InitialState:      c.InitialState,
		AcceptingStates:   accepting,
		Transitions:       transitions,
		Outputs:           outputs,
		AllowRedefinition: c.AllowRedefinition,
	}
}

// ParseConfig reads a Config from its JSON text form, as written by
// Machine.StructureJSON.
func ParseConfig[O any](js []byte) (*Config[O], error) {
	var c Config[O]
	if err := json.Unmarshal(js, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
