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

// Package main is a little command-line utility to drive Moore
// machines.
//
//	moore -c turnstile.yaml coin push
//	moore -c turnstile.yaml -s 0110
//	moore -c turnstile.yaml -dot | dot -Tpng > g.png
//	moore -c turnstile.yaml -expect sessions.yaml
//
// The config file is YAML (or JSON, which is close enough to YAML).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Comcast/moore/core"
	"github.com/Comcast/moore/tools"
	"github.com/Comcast/moore/util"
	. "github.com/Comcast/moore/util/testutil"

	"github.com/jsccast/yaml"
)

type Opts struct {
	configFilename string
	input          string
	expectFilename string

	export  bool
	dot     bool
	mermaid bool
	html    bool
	analyze bool
}

func main() {

	opts := &Opts{}
	flag.StringVar(&opts.configFilename, "c", "", "machine config file (YAML or JSON)")
	flag.StringVar(&opts.input, "s", "", "input as a plain string (tokenized against the alphabet)")
	flag.StringVar(&opts.expectFilename, "expect", "", "session file of expectations to run")
	flag.BoolVar(&opts.export, "export", false, "print the machine's structure as JSON")
	flag.BoolVar(&opts.dot, "dot", false, "print the machine as a Graphviz dot file")
	flag.BoolVar(&opts.mermaid, "mermaid", false, "print the machine as a Mermaid file")
	flag.BoolVar(&opts.html, "html", false, "print the machine as an HTML fragment")
	flag.BoolVar(&opts.analyze, "analyze", false, "print a structural analysis as JSON")
	flag.BoolVar(&util.Logging, "v", false, "verbosity")
	flag.Parse()

	if err := opts.run(flag.Args()); err != nil {
		panic(err)
	}
}

func (opts *Opts) run(args []string) error {

	if opts.configFilename == "" {
		return fmt.Errorf("give a machine config file with -c")
	}

	bs, err := os.ReadFile(opts.configFilename)
	if err != nil {
		return err
	}
	var conf core.Config[interface{}]
	if err = yaml.Unmarshal(bs, &conf); err != nil {
		return err
	}

	m, err := core.NewMachine(&conf)
	if err != nil {
		return err
	}

	switch {
	case opts.export:
		js, err := m.StructureJSON()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", js)
		return nil
	case opts.dot:
		return tools.Dot(m, os.Stdout, "", "")
	case opts.mermaid:
		return tools.Mermaid(m, os.Stdout, nil)
	case opts.html:
		return tools.RenderMachineHTML(m, os.Stdout)
	case opts.analyze:
		fmt.Printf("%s\n", JS(tools.Analyze(m)))
		return nil
	case opts.expectFilename != "":
		bs, err := os.ReadFile(opts.expectFilename)
		if err != nil {
			return err
		}
		var session tools.Session[interface{}]
		if err = yaml.Unmarshal(bs, &session); err != nil {
			return err
		}
		if err = session.Run(m); err != nil {
			return err
		}
		fmt.Printf("passed\n")
		return nil
	}

	symbols := args
	if opts.input != "" {
		symbols = m.Symbols(opts.input)
	}

	r, err := m.Process(symbols...)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", JS(r))

	return nil
}
