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
	"fmt"
	"io"

	"github.com/Comcast/moore/core"
	"github.com/Comcast/moore/util"
)

type MermaidOpts struct {
	// ShowOutputs will include "name / output" labels for states
	// that have outputs.
	ShowOutputs bool `json:"showOutputs"`

	// AcceptingFill is the fill color for accepting states.
	AcceptingFill string `json:"acceptingFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given machine.
func Mermaid[O any](m *core.Machine[O], w io.WriteCloser, opts *MermaidOpts) error {

	if opts == nil {
		opts = &MermaidOpts{
			ShowOutputs:   true,
			AcceptingFill: "#bcf2db",
		}
	}

	conf := m.Structure()

	util.Logf("processing %d states", len(conf.States))

	fmt.Fprintf(w, "graph LR\n")

	nids := make(map[string]string, len(conf.States))
	for i, name := range conf.States {
		nid := fmt.Sprintf("n%d", i+1)
		nids[name] = nid

		label := name
		if opts.ShowOutputs {
			if o, have, err := m.OutputAt(name); err != nil {
				return err
			} else if have {
				label += " / " + renderValue(o)
			}
		}

		if accepting, _ := m.AcceptingAt(name); accepting {
			fmt.Fprintf(w, "  %s((\"%s\"))\n", nid, label)
			if opts.AcceptingFill != "" {
				fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.AcceptingFill)
			}
		} else {
			fmt.Fprintf(w, "  %s(\"%s\")\n", nid, label)
		}
	}

	for _, t := range conf.Transitions {
		fmt.Fprintf(w, "  %s -- \"%s\" --> %s\n", nids[t.From], t.On, nids[t.To])
	}

	fmt.Fprintf(w, "\n")
	util.Logf("mermaid gen done")

	return w.Close()
}
