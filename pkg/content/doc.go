// Package content loads, validates and builds the authored deck.
//
// The deck ships embedded as YAML. Content goes through two checks:
// a structural one against the JSON Schema reflected from the domain types,
// and a semantic lint of every diagram (ids, chains and edges).
package content
