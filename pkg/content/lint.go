package content

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/showcase/pkg/domain"
)

// Issue is a semantic problem found in otherwise well-formed content.
type Issue struct {
	Slide string
	Mode  string
	Msg   string
}

func (i Issue) String() string {
	if i.Mode == "" {
		return fmt.Sprintf("%s: %s", i.Slide, i.Msg)
	}
	return fmt.Sprintf("%s/%s: %s", i.Slide, i.Mode, i.Msg)
}

// Lint reports references the schema cannot check: duplicate ids,
// chains and edges naming unknown nodes, chain nodes cut off from the chain start,
// and workflow steps out of range.
func Lint(d domain.Deck) []Issue {
	var issues []Issue
	seen := make(map[string]bool)
	for _, s := range d.Slides {
		if seen[s.ID] {
			issues = append(issues, Issue{Slide: s.ID, Msg: "duplicate slide id"})
		}
		seen[s.ID] = true

		switch s.Kind {
		case domain.KindWalkthrough:
			if s.Walkthrough == nil {
				issues = append(issues, Issue{Slide: s.ID, Msg: "walkthrough slide has no walkthrough block"})
				continue
			}
			for _, m := range s.Walkthrough.Modes {
				for _, msg := range lintMode(m) {
					issues = append(issues, Issue{Slide: s.ID, Mode: m.Name, Msg: msg})
				}
			}
		case domain.KindWorkflow:
			if s.Workflow == nil {
				issues = append(issues, Issue{Slide: s.ID, Msg: "workflow slide has no workflow block"})
				continue
			}
			for _, msg := range lintWorkflow(*s.Workflow) {
				issues = append(issues, Issue{Slide: s.ID, Msg: msg})
			}
		}
	}
	return issues
}

// Report folds issues into a single error, or nil when there are none.
func Report(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, is := range issues {
		lines[i] = is.String()
	}
	return fmt.Errorf("%w: found %d issues:\n- %s", domain.ErrInvalidContent, len(issues), strings.Join(lines, "\n- "))
}

func lintMode(m domain.ModeDef) []string {
	var msgs []string
	nodes := make(map[string]bool, len(m.Diagram.Nodes))
	for _, n := range m.Diagram.Nodes {
		if nodes[n.ID] {
			msgs = append(msgs, fmt.Sprintf("duplicate node id '%s'", n.ID))
		}
		nodes[n.ID] = true
	}

	adj := make(map[string][]string)
	for _, e := range m.Diagram.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			msgs = append(msgs, fmt.Sprintf("edge %s -> %s has an unknown endpoint", e.From, e.To))
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	for _, id := range m.Chain {
		if !nodes[id] {
			msgs = append(msgs, fmt.Sprintf("chain step '%s' is not a node", id))
		}
	}
	for _, id := range slices.Sorted(maps.Keys(m.Annotations)) {
		if !nodes[id] {
			msgs = append(msgs, fmt.Sprintf("annotation for unknown node '%s'", id))
		}
	}
	for _, id := range slices.Sorted(maps.Keys(m.Details)) {
		if !nodes[id] {
			msgs = append(msgs, fmt.Sprintf("detail for unknown node '%s'", id))
		}
	}

	if len(m.Chain) == 0 || !nodes[m.Chain[0]] {
		return msgs
	}
	visited := connected(adj, m.Chain[0])
	for _, id := range m.Chain[1:] {
		if nodes[id] && !visited[id] {
			msgs = append(msgs, fmt.Sprintf("chain step '%s' is not connected to '%s'", id, m.Chain[0]))
		}
	}
	return msgs
}

// connected crawls the diagram from start, ignoring edge direction.
func connected(adj map[string][]string, start string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range adj[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}

func lintWorkflow(w domain.WorkflowDef) []string {
	var msgs []string
	n := len(w.Agents)
	if w.GateStep >= n {
		msgs = append(msgs, fmt.Sprintf("gate_step %d is past the last agent", w.GateStep))
	}
	if w.RecoveryStep > n {
		msgs = append(msgs, fmt.Sprintf("recovery_step %d is past the run", w.RecoveryStep))
	}
	if len(w.Status) > 0 && len(w.Status) != n {
		msgs = append(msgs, fmt.Sprintf("%d status lines for %d agents", len(w.Status), n))
	}
	for _, a := range w.Actions {
		if a.Step >= n {
			msgs = append(msgs, fmt.Sprintf("action '%s' completes at step %d, past the last agent", a.Label, a.Step))
		}
	}
	ids := make(map[string]bool, n)
	for _, a := range w.Agents {
		if ids[a.ID] {
			msgs = append(msgs, fmt.Sprintf("duplicate agent id '%s'", a.ID))
		}
		ids[a.ID] = true
	}
	return msgs
}
