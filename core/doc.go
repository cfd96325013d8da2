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

// Package core provides the core gear for declarative Moore
// machines: a finite set of states, a finite input alphabet, a
// deterministic (partial) transition table, a set of accepting
// states, and a per-state output function.
//
// The primary type is Machine, built by NewMachine from a Config.
// The Config is data: states, alphabet, initial state, accepting
// states, transition triples, and output pairs.  NewMachine validates
// all of it up front, so a Machine that exists at all is coherent: it
// never references an undeclared state or symbol.
//
// A Machine offers the same transition table through two views.  The
// stateless view (StepFrom, AcceptingAt, OutputAt) takes explicit
// state arguments and never touches the machine's position; it's the
// right view for inspecting or exporting the table.  The stateful
// view (Advance, Accepting, Output, Process) drives the machine's one
// mutable field, the current state.  Both views agree, always.
//
// There are no actions, guards, or epsilon transitions here, and no
// nondeterminism: at most one destination exists per (state, symbol)
// pair.  Output is a function of the state alone, which is what makes
// these Moore machines rather than Mealy machines.
//
// A Machine holds no external resources and does no IO.  Structure()
// serializes a machine back into its Config, preserving the original
// declaration order, so export followed by NewMachine round-trips.
package core
