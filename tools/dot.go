package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Comcast/moore/core"
	"github.com/Comcast/moore/util"

	"gopkg.in/yaml.v2"
)

// Dot makes a Graphviz dot file for the given machine.
//
// States are labeled Moore-style: "name / output" when the state has
// an output.  Accepting states are doublecircles, the initial state
// is bold, and terminal states (no outgoing transitions) are dashed.
//
// The optional from and to can be names of states during a
// transition.  If non-zero, then the from→to edge and the to state
// will be red.  Maybe.
func Dot[O any](m *core.Machine[O], w io.WriteCloser, from, to string) error {

	conf := m.Structure()

	util.Logf("processing %d states", len(conf.States))

	outgoing := make(map[string]int, len(conf.States))
	for _, t := range conf.Transitions {
		outgoing[t.From]++
	}

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=LR,nodesep=0.3,ranksep=0.6]
  node [shape="circle" style="filled" fillcolor="#99ddc8"]
  edge [fontsize="12"]
`)

	for _, name := range conf.States {
		label := escape(name)
		if o, have, err := m.OutputAt(name); err != nil {
			return err
		} else if have {
			label += " / " + escape(renderValue(o))
		}

		shape := "circle"
		if accepting, _ := m.AcceptingAt(name); accepting {
			shape = "doublecircle"
		}
		style := "filled"
		if name == conf.InitialState {
			style += ",bold"
		}
		if outgoing[name] == 0 {
			style += ",dashed"
		}
		color := "black"
		fillcolor := "#99ddc8"
		if name == to {
			color = "red"
			fillcolor = "#f98b8b"
		}
		fmt.Fprintf(w, "  \"%s\" [shape=\"%s\", style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=\"%s\"]\n",
			escape(name), shape, style, color, fillcolor, label)
	}

	for _, t := range conf.Transitions {
		color := "black"
		if from == t.From && to == t.To {
			color = "red"
		}
		fmt.Fprintf(w, "  \"%s\" -> \"%s\" [ color=\"%s\" label=\"%s\" ]\n",
			escape(t.From), escape(t.To), color, escape(t.On))
	}

	fmt.Fprintf(w, "}\n")
	return w.Close()
}

// PNG generates a PNG image based on output from Dot.
//
// This function will write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG[O any](m *core.Machine[O], basename string, from, to string) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(m, dotfile, from, to); err != nil {
		return pngname, err
	}
	cmd := "dot -Tpng " + dotname + " > " + pngname
	if err := exec.Command("bash", "-c", cmd).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

// renderValue renders an output value for a label, via YAML so that
// strings stay plain.
func renderValue(x interface{}) string {
	if s, is := x.(string); is {
		return s
	}
	ys, err := yaml.Marshal(x)
	if err != nil {
		return fmt.Sprintf("%#v", x)
	}
	return strings.TrimRight(string(ys), "\n")
}

func escape(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
