/* Copyright 2018 Comcast Cable Communications Management, LLC
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

package tools

import (
	"sort"

	"github.com/Comcast/moore/core"
)

// MachineAnalysis reports structural observations about a machine.
//
// Nothing here is an error by construction; these are the sorts of
// things a config author probably wants to know about anyway.
type MachineAnalysis struct {
	StateCount      int
	SymbolCount     int
	TransitionCount int
	AcceptingCount  int

	// TerminalStates have no outgoing transitions.
	TerminalStates []string

	// UnreachableStates cannot be reached from the initial state
	// by any input sequence.
	UnreachableStates []string

	// UnusedSymbols appear in the alphabet but in no transition.
	UnusedSymbols []string

	// StatesWithoutOutput have no entry in the output function.
	StatesWithoutOutput []string
}

// Analyze examines the machine's structure.
func Analyze[O any](m *core.Machine[O]) *MachineAnalysis {

	conf := m.Structure()

	a := MachineAnalysis{
		StateCount:      len(conf.States),
		SymbolCount:     len(conf.Alphabet),
		TransitionCount: len(conf.Transitions),
		AcceptingCount:  len(conf.AcceptingStates),
	}

	outgoing := make(map[string][]string, len(conf.States))
	usedSymbols := make(map[string]bool, len(conf.Alphabet))
	for _, t := range conf.Transitions {
		outgoing[t.From] = append(outgoing[t.From], t.To)
		usedSymbols[t.On] = true
	}

	terminal := make(map[string]bool, len(conf.States))
	withoutOutput := make(map[string]bool, len(conf.States))
	for _, name := range conf.States {
		if len(outgoing[name]) == 0 {
			terminal[name] = true
		}
		if _, have, _ := m.OutputAt(name); !have {
			withoutOutput[name] = true
		}
	}

	// Breadth-first from the initial state.
	reachable := map[string]bool{conf.InitialState: true}
	frontier := []string{conf.InitialState}
	for 0 < len(frontier) {
		name := frontier[0]
		frontier = frontier[1:]
		for _, to := range outgoing[name] {
			if !reachable[to] {
				reachable[to] = true
				frontier = append(frontier, to)
			}
		}
	}
	unreachable := make(map[string]bool, len(conf.States))
	for _, name := range conf.States {
		if !reachable[name] {
			unreachable[name] = true
		}
	}

	unused := make(map[string]bool, len(conf.Alphabet))
	for _, sym := range conf.Alphabet {
		if !usedSymbols[sym] {
			unused[sym] = true
		}
	}

	a.TerminalStates = keysToStringSlice(terminal)
	a.UnreachableStates = keysToStringSlice(unreachable)
	a.UnusedSymbols = keysToStringSlice(unused)
	a.StatesWithoutOutput = keysToStringSlice(withoutOutput)

	return &a
}

// keysToStringSlice converts the keys from a map into a sorted slice
// of strings.
func keysToStringSlice(m map[string]bool) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}
