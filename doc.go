/*
Package showcase is an interactive presentation engine for explaining agentic AI systems.

A deck is a sequence of slides authored in YAML. Diagram slides walk a chain of nodes step
by step, highlighting the path taken so far; the workflow slide replays a production
incident with and without agent supervision, including a human decision gate.

# Concept

Three small state machines do the work. The deck controller owns the visible slide and
its generation counter, the step sequencer walks a chain with optional auto-play and gates,
and the diagram renderer turns a declarative diagram plus a highlight into SVG, Mermaid or
text. Hosts (the terminal presenter, the HTTP server, the MCP server) only read views and
send actions.

# Usage

	p, err := showcase.Load("")
	if err != nil {
		log.Fatal(err)
	}
	ctrl := p.NewController()
	defer ctrl.Close()

	ctrl.Next()
	fmt.Println(ctrl.State().Counter()) // 02/09

An empty path loads the embedded deck; any other path is read, validated against the
deck JSON Schema and linted. Lint findings are returned in Presentation.Issues and do not
prevent loading.
*/
package showcase
