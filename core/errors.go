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

// These errors are user errors, not internal errors.
//
// Each kind gets its own type so that a caller can errors.As on the
// kind instead of parsing strings.

// InvalidState occurs when a referenced state is not in the declared
// state set -- at construction (initial state, accepting states,
// output states, transition endpoints) or at query time for the
// explicit-state methods.
type InvalidState struct {
	Name string
}

func (e *InvalidState) Error() string {
	return `state "` + e.Name + `" not declared`
}

// InvalidSymbol occurs when a referenced symbol is not in the
// declared alphabet -- at construction (transition symbols) or at
// query/processing time.
type InvalidSymbol struct {
	Symbol string
}

func (e *InvalidSymbol) Error() string {
	return `symbol "` + e.Symbol + `" not in alphabet`
}

// NoTransition occurs during Process when the current state has no
// transition for the next symbol.
//
// Distinct from InvalidSymbol: the symbol is declared, but the
// transition table has no row for this (state, symbol) pair.
type NoTransition struct {
	From string
	On   string
}

func (e *NoTransition) Error() string {
	return `no transition from "` + e.From + `" on "` + e.On + `"`
}

// ConflictingDefinition occurs at construction when a (state, symbol)
// transition pair or an output state is defined more than once.
//
// Config.AllowRedefinition turns these conflicts back into silent
// last-write-wins.
type ConflictingDefinition struct {
	// Kind is either "transition" or "output".
	Kind string

	// State is the transition source or the output state.
	State string

	// On is the transition symbol (empty for output conflicts).
	On string
}

func (e *ConflictingDefinition) Error() string {
	if e.Kind == "transition" {
		return `conflicting transition from "` + e.State + `" on "` + e.On + `"`
	}
	return `conflicting output for state "` + e.State + `"`
}
