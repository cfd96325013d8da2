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

// Package crew holds collections of machines behind one lock.
//
// A core.Machine's tables are immutable after construction, but its
// current state is not, so a bare Machine is not safe for concurrent
// mutation.  A Crew is the synchronization answer: one RWMutex
// guarding a set of named machines.
package crew

import (
	"fmt"
	"sync"

	"github.com/Comcast/moore/core"
	"github.com/Comcast/moore/util"
)

// IdLength is the length of Gensym'ed machine ids.
var IdLength = 8

// Machine is a pair: id and core.Machine.
type Machine[O any] struct {
	Id string           `json:"id,omitempty"`
	M  *core.Machine[O] `json:"-"`
}

// Crew is a set of machines indexed by id.
type Crew[O any] struct {
	sync.RWMutex

	Id       string                 `json:"id"`
	Machines map[string]*Machine[O] `json:"machines"`
}

// NewCrew makes an empty Crew with the given id.
func NewCrew[O any](id string) *Crew[O] {
	return &Crew[O]{
		Id:       id,
		Machines: make(map[string]*Machine[O]),
	}
}

// Add builds a machine from the given config and adds it under the
// given id.
//
// An empty id gets a Gensym'ed one.  The (possibly generated) id is
// returned.  Adding over an existing id is an error, since silently
// replacing a positioned machine loses its state.
func (c *Crew[O]) Add(id string, conf *core.Config[O]) (string, error) {
	m, err := core.NewMachine(conf)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = core.Gensym(IdLength)
	}

	c.Lock()
	defer c.Unlock()

	if _, have := c.Machines[id]; have {
		return "", fmt.Errorf(`machine "%s" already in crew "%s"`, id, c.Id)
	}
	c.Machines[id] = &Machine[O]{
		Id: id,
		M:  m,
	}
	util.Logf("crew %s added machine %s", c.Id, id)

	return id, nil
}

// Get returns the machine with the given id (or nil).
//
// The caller gets the real machine, not a copy.  Driving it while
// others do the same is the caller's problem; prefer Process.
func (c *Crew[O]) Get(id string) *Machine[O] {
	c.RLock()
	m := c.Machines[id]
	c.RUnlock()
	return m
}

// Rem removes the machine with the given id, reporting whether it was
// there.
func (c *Crew[O]) Rem(id string) bool {
	c.Lock()
	defer c.Unlock()
	if _, have := c.Machines[id]; !have {
		return false
	}
	delete(c.Machines, id)
	util.Logf("crew %s removed machine %s", c.Id, id)
	return true
}

// Process drives the identified machine through the given symbols
// while holding the crew's write lock.
func (c *Crew[O]) Process(id string, symbols ...string) (*core.Result[O], error) {
	c.Lock()
	defer c.Unlock()

	m, have := c.Machines[id]
	if !have {
		return nil, fmt.Errorf(`machine "%s" not in crew "%s"`, id, c.Id)
	}
	return m.M.Process(symbols...)
}

// Ids returns the ids of the crew's machines.
func (c *Crew[O]) Ids() []string {
	c.RLock()
	acc := make([]string, 0, len(c.Machines))
	for id := range c.Machines {
		acc = append(acc, id)
	}
	c.RUnlock()
	return acc
}
