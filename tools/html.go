package tools

import (
	"fmt"
	"html"
	"io"

	"github.com/Comcast/moore/core"

	md "github.com/russross/blackfriday/v2"
)

// RenderMachineHTML writes an HTML fragment documenting the machine's
// structure.
//
// Config and state Doc strings are rendered as Markdown.
func RenderMachineHTML[O any](m *core.Machine[O], out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	conf := m.Structure()

	if conf.Name != "" {
		f(`<h1 class="machineName">%s</h1>`, html.EscapeString(conf.Name))
	}
	if conf.Doc != "" {
		f(`<div class="machineDoc doc">%s</div>`, md.Run([]byte(conf.Doc)))
	}

	outgoing := make(map[string][]core.Transition, len(conf.States))
	for _, t := range conf.Transitions {
		outgoing[t.From] = append(outgoing[t.From], t)
	}

	f(`<div class="alphabet">alphabet:`)
	for _, sym := range conf.Alphabet {
		f(`<code>%s</code>`, html.EscapeString(sym))
	}
	f(`</div>`)

	{ // States
		f(`<div class="states"><table>`)
		for _, name := range conf.States {
			id := html.EscapeString(name)
			f(`<tr class="state"><td><span id="%s" class="stateName">%s</span></td><td>`, id, id)

			if name == conf.InitialState {
				f(`<div class="initial">initial</div>`)
			}
			if accepting, _ := m.AcceptingAt(name); accepting {
				f(`<div class="accepting">accepting</div>`)
			}
			if o, have, err := m.OutputAt(name); err != nil {
				return err
			} else if have {
				f(`<div class="output">output: <code>%s</code></div>`,
					html.EscapeString(renderValue(o)))
			}

			if ts := outgoing[name]; 0 < len(ts) {
				f(`<div class="transitions"><table>`)
				for _, t := range ts {
					f(`<tr><td><code>%s</code></td>`, html.EscapeString(t.On))
					f(`<td><a href="#%s"><code>%s</code></a></td></tr>`,
						html.EscapeString(t.To), html.EscapeString(t.To))
				}
				f(`</table></div>`)
			}
			f(`</td></tr>`)
		}
		f(`</table></div>`)
	}

	return nil
}
