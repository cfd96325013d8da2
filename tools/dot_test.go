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


package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/moore/core"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func turnstile(t *testing.T) *core.Machine[string] {
	t.Helper()
	m, err := core.NewMachine(core.TurnstileConfig())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDot(t *testing.T) {
	m := turnstile(t)

	var buf bytes.Buffer
	if err := Dot(m, nopCloser{&buf}, "locked", "unlocked"); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	for _, want := range []string{
		"digraph G {",
		`"locked" -> "unlocked" [ color="red" label="coin" ]`,
		"doublecircle",
		"locked / halt",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
}
