/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// key is the composite (state, symbol) identity for the transition
// table.
type key struct {
	from string
	on   string
}

// Machine is a validated Moore machine: immutable tables built from a
// Config plus one mutable field, the current state.
//
// The tables never change after NewMachine returns, so they are safe
// for unsynchronized concurrent reads.  The current state is not.  A
// Machine is therefore not safe for concurrent mutation; see package
// crew for a synchronized container.
type Machine[O any] struct {
	conf *Config[O]

	states      map[string]bool
	alphabet    map[string]bool
	accepting   map[string]bool
	transitions map[key]string
	outputs     map[string]O

	initial string
	current string
}

// Result is what Process returns on success.
type Result[O any] struct {
	// Accepted reports whether the final state is an accepting
	// state.
	Accepted bool `json:"accepted"`

	// Output is the final state's output, or nil if that state
	// has none.  A nil Output is not the same as a zero output
	// value.
	Output *O `json:"output,omitempty"`

	// FinalState is the name of the state the machine ended at.
	FinalState string `json:"finalState"`
}

// NewMachine validates the given Config and builds a Machine
// positioned at the initial state.
//
// Validation fails fast, in this order: the initial state, the
// accepting states, the transitions (destination, then source, then
// symbol), and then the output states.  A construction error means no
// usable Machine: the first return value is nil.
//
// Unless conf.AllowRedefinition is set, a duplicate (from, on)
// transition pair or a duplicate output state is a
// ConflictingDefinition error.
func NewMachine[O any](conf *Config[O]) (*Machine[O], error) {
	m := &Machine[O]{
		states:      make(map[string]bool, len(conf.States)),
		alphabet:    make(map[string]bool, len(conf.Alphabet)),
		accepting:   make(map[string]bool, len(conf.AcceptingStates)),
		transitions: make(map[key]string, len(conf.Transitions)),
		outputs:     make(map[string]O, len(conf.Outputs)),
	}

	states := dedup(conf.States)
	alphabet := dedup(conf.Alphabet)
	accepting := dedup(conf.AcceptingStates)

	for _, name := range states {
		m.states[name] = true
	}
	for _, sym := range alphabet {
		m.alphabet[sym] = true
	}

	if !m.states[conf.InitialState] {
		return nil, &InvalidState{conf.InitialState}
	}
	for _, name := range accepting {
		if !m.states[name] {
			return nil, &InvalidState{name}
		}
		m.accepting[name] = true
	}
	for _, t := range conf.Transitions {
		if !m.states[t.To] {
			return nil, &InvalidState{t.To}
		}
		if !m.states[t.From] {
			return nil, &InvalidState{t.From}
		}
		if !m.alphabet[t.On] {
			return nil, &InvalidSymbol{t.On}
		}
	}
	for _, o := range conf.Outputs {
		if !m.states[o.State] {
			return nil, &InvalidState{o.State}
		}
	}

	// Declarations are all good.  Build the tables, watching for
	// conflicting rows.
	transitions := make([]Transition, 0, len(conf.Transitions))
	at := make(map[key]int, len(conf.Transitions))
	for _, t := range conf.Transitions {
		k := key{t.From, t.On}
		if i, have := at[k]; have {
			if !conf.AllowRedefinition {
				return nil, &ConflictingDefinition{"transition", t.From, t.On}
			}
			transitions[i] = t
		} else {
			at[k] = len(transitions)
			transitions = append(transitions, t)
		}
		m.transitions[k] = t.To
	}

	outputs := make([]Output[O], 0, len(conf.Outputs))
	outAt := make(map[string]int, len(conf.Outputs))
	for _, o := range conf.Outputs {
		if i, have := outAt[o.State]; have {
			if !conf.AllowRedefinition {
				return nil, &ConflictingDefinition{"output", o.State, ""}
			}
			outputs[i] = o
		} else {
			outAt[o.State] = len(outputs)
			outputs = append(outputs, o)
		}
		m.outputs[o.State] = o.Value
	}

	// Retain a normalized copy so Structure() can report the
	// machine in the caller's original order.
	m.conf = &Config[O]{
		Name:              conf.Name,
		Version:           conf.Version,
		Doc:               conf.Doc,
		States:            states,
		Alphabet:          alphabet,
		InitialState:      conf.InitialState,
		AcceptingStates:   accepting,
		Transitions:       transitions,
		Outputs:           outputs,
		AllowRedefinition: conf.AllowRedefinition,
	}

	m.initial = conf.InitialState
	m.current = conf.InitialState

	return m, nil
}

// dedup drops later duplicates, keeping first-occurrence order.
func dedup(names []string) []string {
	acc := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		acc = append(acc, name)
	}
	return acc
}

// IsValidState reports whether the given name is a declared state.
func (m *Machine[O]) IsValidState(name string) bool {
	return m.states[name]
}

// IsValidSymbol reports whether the given symbol is in the declared
// alphabet.
func (m *Machine[O]) IsValidSymbol(symbol string) bool {
	return m.alphabet[symbol]
}

// StepFrom is the pure query form of a transition: it looks up the
// destination for (state, symbol) without touching the current state.
//
// The second return value is false when the pair has no transition.
func (m *Machine[O]) StepFrom(state, symbol string) (string, bool, error) {
	if !m.states[state] {
		return "", false, &InvalidState{state}
	}
	if !m.alphabet[symbol] {
		return "", false, &InvalidSymbol{symbol}
	}
	to, have := m.transitions[key{state, symbol}]
	return to, have, nil
}

// Advance is the stateful form of a transition: it consults the
// transition table at the current state and, if a destination exists,
// moves there and returns it.
//
// When no transition exists, the current state is left unchanged and
// the second return value is false.  That's not an error here; only
// an undeclared symbol is.
func (m *Machine[O]) Advance(symbol string) (string, bool, error) {
	if !m.alphabet[symbol] {
		return "", false, &InvalidSymbol{symbol}
	}
	to, have := m.transitions[key{m.current, symbol}]
	if !have {
		return "", false, nil
	}
	m.current = to
	return to, true, nil
}

// Accepting reports whether the current state is an accepting state.
func (m *Machine[O]) Accepting() bool {
	return m.accepting[m.current]
}

// AcceptingAt reports whether the given state is an accepting state.
func (m *Machine[O]) AcceptingAt(state string) (bool, error) {
	if !m.states[state] {
		return false, &InvalidState{state}
	}
	return m.accepting[state], nil
}

// Output returns the current state's output value.
//
// The second return value is false when the current state has no
// output, which keeps "no output" distinct from a zero O.
func (m *Machine[O]) Output() (O, bool) {
	o, have := m.outputs[m.current]
	return o, have
}

// OutputAt returns the given state's output value (if any).
func (m *Machine[O]) OutputAt(state string) (O, bool, error) {
	if !m.states[state] {
		var zero O
		return zero, false, &InvalidState{state}
	}
	o, have := m.outputs[state]
	return o, have, nil
}

// Current returns the name of the current state.
func (m *Machine[O]) Current() string {
	return m.current
}

// Reset moves the machine back to its initial state.
func (m *Machine[O]) Reset() {
	m.current = m.initial
}

// Process resets the machine and then Advances through the given
// symbols in order.
//
// An undeclared symbol is an InvalidSymbol error, checked before the
// transition for that symbol is attempted.  A declared symbol with no
// transition from the current state is a NoTransition error.  Either
// way the whole call fails: there is no partial Result.  The machine
// is left at the last state it reached, which is usually what you
// want to look at when diagnosing the failure.
//
// On success the machine remains positioned at the final state.
func (m *Machine[O]) Process(symbols ...string) (*Result[O], error) {
	m.Reset()
	for _, symbol := range symbols {
		if !m.alphabet[symbol] {
			return nil, &InvalidSymbol{symbol}
		}
		if _, moved, err := m.Advance(symbol); err != nil {
			return nil, err
		} else if !moved {
			return nil, &NoTransition{m.current, symbol}
		}
	}
	r := &Result[O]{
		Accepted:   m.accepting[m.current],
		FinalState: m.current,
	}
	if o, have := m.outputs[m.current]; have {
		r.Output = &o
	}
	return r, nil
}

// ProcessString tokenizes the given string with Symbols and Processes
// the result.
func (m *Machine[O]) ProcessString(s string) (*Result[O], error) {
	return m.Process(m.Symbols(s)...)
}

// Symbols reads a plain string as a symbol sequence.
//
// At each position, the longest alphabet symbol that prefixes the
// rest of the string is taken.  With a single-character alphabet this
// is just the characters of the string; with symbols like "Next",
// "NextNext" reads as two symbols.  When nothing in the alphabet
// matches, the next character is taken as a (bogus) symbol, which
// Process will then reject as an InvalidSymbol.
func (m *Machine[O]) Symbols(s string) []string {
	acc := make([]string, 0, len(s))
	for 0 < len(s) {
		best := ""
		for sym := range m.alphabet {
			if len(best) < len(sym) && strings.HasPrefix(s, sym) {
				best = sym
			}
		}
		if best == "" {
			// Not even wrong.  Let Process complain.
			_, size := utf8.DecodeRuneInString(s)
			best = s[:size]
		}
		acc = append(acc, best)
		s = s[len(best):]
	}
	return acc
}

// Structure reconstructs the machine's configuration.
//
// The returned Config is a deep copy in the original input order, so
// a round trip through NewMachine gives an equivalent machine.
func (m *Machine[O]) Structure() *Config[O] {
	return m.conf.Copy()
}

// StructureJSON renders Structure() as JSON text, suitable for
// ParseConfig.
func (m *Machine[O]) StructureJSON() ([]byte, error) {
	return json.Marshal(m.conf)
}
