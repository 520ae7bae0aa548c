// Package slides implements the interactive slide kinds mounted by the deck.
//
// Every slide is built from a domain.SlideDef and a deck.Mount. Slides that animate own
// their timers through the mount's clock and report changes through Mount.Notify; the
// deck drops reports from slides it has already replaced. Hosts read a slide through
// View and drive it through Do or HandleKey.
package slides
