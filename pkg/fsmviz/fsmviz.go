// Package fsmviz renders fsm configurations as Graphviz DOT or Mermaid state diagrams.
//
// Output is deterministic: states follow config order and the edges of each
// state are sorted by event name. Transition targets that name no declared
// state are drawn as dashed nodes so malformed configs are easy to spot.
package fsmviz

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

type edge struct {
	from, to, event string
}

func edges(cfg *fsm.Config) []edge {
	var out []edge
	for _, name := range cfg.StateNames() {
		def, _ := cfg.Transitions(name)
		for _, event := range slices.Sorted(maps.Keys(def)) {
			out = append(out, edge{from: name, to: def[event], event: event})
		}
	}
	return out
}

// undeclared returns names referenced by transitions or current that the config does not declare.
func undeclared(cfg *fsm.Config, es []edge, current string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if name == "" || cfg.Has(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, e := range es {
		add(e.to)
	}
	add(current)
	return out
}

// DOT renders cfg as a Graphviz digraph. When current is non-empty that state is filled.
func DOT(cfg *fsm.Config, current string) string {
	if cfg == nil {
		return ""
	}

	es := edges(cfg)

	var buf bytes.Buffer
	buf.WriteString("digraph fsm {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded];\n")
	buf.WriteString("  __initial [shape=point, label=\"\"];\n")
	fmt.Fprintf(&buf, "  __initial -> %q;\n", cfg.Initial())

	for _, name := range cfg.StateNames() {
		if name == current {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled\", fillcolor=lightgreen];\n", name)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", name)
	}
	for _, name := range undeclared(cfg, es, current) {
		style := "dashed"
		if name == current {
			style = "dashed,filled"
		}
		fmt.Fprintf(&buf, "  %q [style=%q, fillcolor=lightgreen];\n", name, style)
	}

	for _, e := range es {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.from, e.to, e.event)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Mermaid renders cfg as a Mermaid stateDiagram-v2.
//
// States get generated ids (s0, s1, ...) in config order, followed by undeclared
// targets, and are declared with their names as descriptions, so names may hold
// spaces or punctuation Mermaid does not allow in ids.
func Mermaid(cfg *fsm.Config) string {
	if cfg == nil {
		return ""
	}

	es := edges(cfg)
	names := append(cfg.StateNames(), undeclared(cfg, es, "")...)
	ids := make(map[string]string, len(names))

	var buf bytes.Buffer
	buf.WriteString("stateDiagram-v2\n")
	for i, name := range names {
		ids[name] = "s" + strconv.Itoa(i)
		fmt.Fprintf(&buf, "  state \"%s\" as %s\n", mermaidText.Replace(name), ids[name])
	}
	if id, ok := ids[cfg.Initial()]; ok {
		fmt.Fprintf(&buf, "  [*] --> %s\n", id)
	}
	for _, e := range es {
		fmt.Fprintf(&buf, "  %s --> %s : %s\n", ids[e.from], ids[e.to], mermaidText.Replace(e.event))
	}
	return buf.String()
}

// mermaidText escapes characters that end a description or label early.
var mermaidText = strings.NewReplacer(
	`"`, "#quot;",
	":", "#58;",
	";", "#59;",
	"\n", " ",
)
