/* Copyright 2021 Comcast Cable Communications Management, LLC
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
	"errors"
	"reflect"
	"testing"
)

// binary makes a machine over {0,1} with a transition gap: "odd" has
// no row for "0".
func binary(t *testing.T) *Machine[string] {
	t.Helper()
	m, err := NewMachine(&Config[string]{
		States:          []string{"even", "odd"},
		Alphabet:        []string{"0", "1"},
		InitialState:    "even",
		AcceptingStates: []string{"even"},
		Transitions: []Transition{
			{From: "even", On: "0", To: "even"},
			{From: "even", On: "1", To: "odd"},
			{From: "odd", On: "1", To: "even"},
		},
		Outputs: []Output[string]{
			{State: "even", Value: ""},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestValidation(t *testing.T) {
	base := func() *Config[string] {
		return &Config[string]{
			States:          []string{"a", "b"},
			Alphabet:        []string{"x"},
			InitialState:    "a",
			AcceptingStates: []string{"b"},
			Transitions:     []Transition{{From: "a", On: "x", To: "b"}},
			Outputs:         []Output[string]{{State: "b", Value: "done"}},
		}
	}

	tests := []struct {
		description string
		mutate      func(*Config[string])
		badState    string
		badSymbol   string
	}{
		{
			description: "undeclared initial state",
			mutate:      func(c *Config[string]) { c.InitialState = "nope" },
			badState:    "nope",
		},
		{
			description: "undeclared accepting state",
			mutate: func(c *Config[string]) {
				c.AcceptingStates = append(c.AcceptingStates, "nope")
			},
			badState: "nope",
		},
		{
			description: "undeclared transition source",
			mutate: func(c *Config[string]) {
				c.Transitions = append(c.Transitions, Transition{From: "nope", On: "x", To: "b"})
			},
			badState: "nope",
		},
		{
			description: "undeclared transition destination",
			mutate: func(c *Config[string]) {
				c.Transitions = append(c.Transitions, Transition{From: "a", On: "x", To: "nope"})
			},
			badState: "nope",
		},
		{
			description: "both transition endpoints undeclared reports destination",
			mutate: func(c *Config[string]) {
				c.Transitions = append(c.Transitions, Transition{From: "neither", On: "x", To: "nor"})
			},
			badState: "nor",
		},
		{
			description: "undeclared transition symbol",
			mutate: func(c *Config[string]) {
				c.Transitions = append(c.Transitions, Transition{From: "a", On: "y", To: "b"})
			},
			badSymbol: "y",
		},
		{
			description: "undeclared output state",
			mutate: func(c *Config[string]) {
				c.Outputs = append(c.Outputs, Output[string]{State: "nope", Value: "?"})
			},
			badState: "nope",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			conf := base()
			tc.mutate(conf)
			m, err := NewMachine(conf)
			if m != nil {
				t.Fatal("expected no machine")
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.badState != "" {
				var e *InvalidState
				if !errors.As(err, &e) {
					t.Fatalf("expected InvalidState but got %v", err)
				}
				if e.Name != tc.badState {
					t.Fatalf(`expected state "%s" but got "%s"`, tc.badState, e.Name)
				}
			}
			if tc.badSymbol != "" {
				var e *InvalidSymbol
				if !errors.As(err, &e) {
					t.Fatalf("expected InvalidSymbol but got %v", err)
				}
				if e.Symbol != tc.badSymbol {
					t.Fatalf(`expected symbol "%s" but got "%s"`, tc.badSymbol, e.Symbol)
				}
			}
		})
	}

	t.Run("valid config makes a machine at the initial state", func(t *testing.T) {
		m, err := NewMachine(base())
		if err != nil {
			t.Fatal(err)
		}
		if m.Current() != "a" {
			t.Fatalf(`expected current "a" but got "%s"`, m.Current())
		}
	})
}

func TestConflictingDefinitions(t *testing.T) {
	conf := TurnstileConfig()
	conf.Transitions = append(conf.Transitions,
		Transition{From: "locked", On: "coin", To: "locked"})

	if _, err := NewMachine(conf); err == nil {
		t.Fatal("expected an error")
	} else {
		var e *ConflictingDefinition
		if !errors.As(err, &e) {
			t.Fatalf("expected ConflictingDefinition but got %v", err)
		}
		if e.Kind != "transition" || e.State != "locked" || e.On != "coin" {
			t.Fatalf("wrong conflict: %v", err)
		}
	}

	conf.AllowRedefinition = true
	m, err := NewMachine(conf)
	if err != nil {
		t.Fatal(err)
	}
	// Last write wins when redefinition is allowed.
	if to, have, err := m.StepFrom("locked", "coin"); err != nil {
		t.Fatal(err)
	} else if !have || to != "locked" {
		t.Fatalf(`expected "locked" but got "%s" (%v)`, to, have)
	}

	conf = TurnstileConfig()
	conf.Outputs = append(conf.Outputs, Output[string]{State: "locked", Value: "stop"})
	if _, err := NewMachine(conf); err == nil {
		t.Fatal("expected an error")
	} else {
		var e *ConflictingDefinition
		if !errors.As(err, &e) {
			t.Fatalf("expected ConflictingDefinition but got %v", err)
		}
		if e.Kind != "output" || e.State != "locked" {
			t.Fatalf("wrong conflict: %v", err)
		}
	}
}

func TestMembership(t *testing.T) {
	m := binary(t)

	if !m.IsValidState("even") || !m.IsValidState("odd") {
		t.Fatal("declared states should be valid")
	}
	if m.IsValidState("prime") {
		t.Fatal(`"prime" should not be valid`)
	}
	if !m.IsValidSymbol("0") || !m.IsValidSymbol("1") {
		t.Fatal("declared symbols should be valid")
	}
	if m.IsValidSymbol("2") {
		t.Fatal(`"2" should not be valid`)
	}
}

func TestStepFrom(t *testing.T) {
	m := binary(t)

	if to, have, err := m.StepFrom("even", "1"); err != nil {
		t.Fatal(err)
	} else if !have || to != "odd" {
		t.Fatalf(`expected "odd" but got "%s" (%v)`, to, have)
	}

	// The gap: no row for (odd, 0).
	if _, have, err := m.StepFrom("odd", "0"); err != nil {
		t.Fatal(err)
	} else if have {
		t.Fatal("expected no transition")
	}

	// StepFrom never moves the machine.
	if m.Current() != "even" {
		t.Fatalf(`expected current "even" but got "%s"`, m.Current())
	}

	var badState *InvalidState
	if _, _, err := m.StepFrom("prime", "0"); !errors.As(err, &badState) {
		t.Fatalf("expected InvalidState but got %v", err)
	}
	var badSymbol *InvalidSymbol
	if _, _, err := m.StepFrom("even", "2"); !errors.As(err, &badSymbol) {
		t.Fatalf("expected InvalidSymbol but got %v", err)
	}
}

func TestAdvance(t *testing.T) {
	m := binary(t)

	if to, moved, err := m.Advance("1"); err != nil || !moved || to != "odd" {
		t.Fatalf(`expected move to "odd" but got "%s" (%v, %v)`, to, moved, err)
	}
	if m.Current() != "odd" {
		t.Fatalf(`expected current "odd" but got "%s"`, m.Current())
	}

	// No transition from odd on 0: no move, no error.
	if _, moved, err := m.Advance("0"); err != nil {
		t.Fatal(err)
	} else if moved {
		t.Fatal("expected no move")
	}
	if m.Current() != "odd" {
		t.Fatalf(`expected current "odd" but got "%s"`, m.Current())
	}

	var badSymbol *InvalidSymbol
	if _, _, err := m.Advance("2"); !errors.As(err, &badSymbol) {
		t.Fatalf("expected InvalidSymbol but got %v", err)
	}
}

func TestAcceptingAndOutput(t *testing.T) {
	m := binary(t)

	if !m.Accepting() {
		t.Fatal(`"even" should accept`)
	}
	if accepting, err := m.AcceptingAt("odd"); err != nil || accepting {
		t.Fatalf(`"odd" should not accept (%v)`, err)
	}
	var badState *InvalidState
	if _, err := m.AcceptingAt("prime"); !errors.As(err, &badState) {
		t.Fatalf("expected InvalidState but got %v", err)
	}

	// "even" has the empty string as its output.  That's an
	// output, and it's not the same as "odd" having none.
	if o, have := m.Output(); !have || o != "" {
		t.Fatalf(`expected defined empty output but got "%s" (%v)`, o, have)
	}
	if _, have, err := m.OutputAt("odd"); err != nil {
		t.Fatal(err)
	} else if have {
		t.Fatal(`"odd" should have no output`)
	}
	if _, _, err := m.OutputAt("prime"); !errors.As(err, &badState) {
		t.Fatalf("expected InvalidState but got %v", err)
	}
}

func TestProcess(t *testing.T) {
	m := binary(t)

	r, err := m.Process("1", "1", "0")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Accepted || r.FinalState != "even" {
		t.Fatalf("unexpected result %#v", r)
	}
	if r.Output == nil || *r.Output != "" {
		t.Fatalf("unexpected output %#v", r.Output)
	}

	// Determinism: same input, same triple, every time.
	for i := 0; i < 3; i++ {
		again, err := m.Process("1", "1", "0")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(r, again) {
			t.Fatalf("expected %#v but got %#v", r, again)
		}
	}

	// The machine stays at the final state.
	if m.Current() != "even" {
		t.Fatalf(`expected current "even" but got "%s"`, m.Current())
	}
}

func TestProcessNoTransition(t *testing.T) {
	m := binary(t)

	// (odd, 0) has no row.
	_, err := m.Process("1", "0")
	var e *NoTransition
	if !errors.As(err, &e) {
		t.Fatalf("expected NoTransition but got %v", err)
	}
	if e.From != "odd" || e.On != "0" {
		t.Fatalf("wrong gap: %v", err)
	}

	// The machine is left at the last state it reached.
	if m.Current() != "odd" {
		t.Fatalf(`expected current "odd" but got "%s"`, m.Current())
	}
}

func TestProcessInvalidSymbol(t *testing.T) {
	m := binary(t)

	// "2" is outside the alphabet, so this is an InvalidSymbol,
	// not a NoTransition.
	_, err := m.ProcessString("002")
	var e *InvalidSymbol
	if !errors.As(err, &e) {
		t.Fatalf("expected InvalidSymbol but got %v", err)
	}
	if e.Symbol != "2" {
		t.Fatalf(`expected symbol "2" but got "%s"`, e.Symbol)
	}
}

func TestReset(t *testing.T) {
	m := binary(t)

	if _, _, err := m.Advance("1"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		m.Reset()
		if m.Current() != "even" {
			t.Fatalf(`expected current "even" but got "%s"`, m.Current())
		}
	}

	// Processing nothing is the same as a fresh reset.
	r, err := m.Process()
	if err != nil {
		t.Fatal(err)
	}
	if r.FinalState != "even" || !r.Accepted {
		t.Fatalf("unexpected result %#v", r)
	}
	if r.Output == nil || *r.Output != "" {
		t.Fatalf("unexpected output %#v", r.Output)
	}
}

func TestTrafficLight(t *testing.T) {
	m, err := NewMachine(TrafficLightConfig())
	if err != nil {
		t.Fatal(err)
	}

	r, err := m.ProcessString("NextNextNext")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Accepted {
		t.Fatal("expected acceptance")
	}
	if r.FinalState != "Red" {
		t.Fatalf(`expected "Red" but got "%s"`, r.FinalState)
	}
	if r.Output == nil || *r.Output != "Stop" {
		t.Fatalf("unexpected output %#v", r.Output)
	}
}

func TestNoOutputState(t *testing.T) {
	m, err := NewMachine(&Config[string]{
		States:          []string{"S", "T"},
		Alphabet:        []string{"a"},
		InitialState:    "S",
		AcceptingStates: []string{"T"},
		Transitions:     []Transition{{From: "S", On: "a", To: "T"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	r, err := m.ProcessString("a")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Accepted || r.FinalState != "T" {
		t.Fatalf("unexpected result %#v", r)
	}
	if r.Output != nil {
		t.Fatalf("expected absent output but got %#v", r.Output)
	}
}

func TestSymbols(t *testing.T) {
	tests := []struct {
		description string
		conf        *Config[string]
		input       string
		expected    []string
	}{
		{
			description: "single-character alphabet",
			conf: &Config[string]{
				States:       []string{"s"},
				Alphabet:     []string{"0", "1"},
				InitialState: "s",
			},
			input:    "0110",
			expected: []string{"0", "1", "1", "0"},
		},
		{
			description: "multi-character symbols",
			conf: &Config[string]{
				States:       []string{"s"},
				Alphabet:     []string{"Next"},
				InitialState: "s",
			},
			input:    "NextNext",
			expected: []string{"Next", "Next"},
		},
		{
			description: "longest match wins",
			conf: &Config[string]{
				States:       []string{"s"},
				Alphabet:     []string{"a", "ab"},
				InitialState: "s",
			},
			input:    "aba",
			expected: []string{"ab", "a"},
		},
		{
			description: "unmatched positions become single characters",
			conf: &Config[string]{
				States:       []string{"s"},
				Alphabet:     []string{"Next"},
				InitialState: "s",
			},
			input:    "No",
			expected: []string{"N", "o"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			m, err := NewMachine(tc.conf)
			if err != nil {
				t.Fatal(err)
			}
			got := m.Symbols(tc.input)
			if !reflect.DeepEqual(tc.expected, got) {
				t.Fatalf("expected %#v but got %#v", tc.expected, got)
			}
		})
	}
}

func TestStructureRoundTrip(t *testing.T) {
	conf := TurnstileConfig()
	// Sneak in some duplicate declarations, which should be
	// dropped (first occurrence wins) rather than rejected.
	conf.States = append(conf.States, "locked")
	conf.AcceptingStates = append(conf.AcceptingStates, "locked")

	m, err := NewMachine(conf)
	if err != nil {
		t.Fatal(err)
	}

	js, err := m.StructureJSON()
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseConfig[string](js)
	if err != nil {
		t.Fatal(err)
	}
	n, err := NewMachine(parsed)
	if err != nil {
		t.Fatal(err)
	}

	// Declaration order is preserved, so we can compare the
	// structures as sequences (which is stronger than the
	// set-equality we actually require).
	if !reflect.DeepEqual(m.Structure(), n.Structure()) {
		t.Fatalf("round trip changed the structure:\n%#v\n%#v",
			m.Structure(), n.Structure())
	}

	expected := TurnstileConfig()
	if !reflect.DeepEqual(expected, n.Structure()) {
		t.Fatalf("expected\n%#v\nbut got\n%#v", expected, n.Structure())
	}
}

func TestStructureIsACopy(t *testing.T) {
	m, err := NewMachine(TurnstileConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := m.Structure()
	s.States[0] = "vandalized"
	s.Transitions[0].To = "vandalized"
	if to, _, err := m.StepFrom("locked", "coin"); err != nil || to != "unlocked" {
		t.Fatalf("mutating an exported structure reached the machine: %s %v", to, err)
	}
}
