package session

import (
	"fmt"

	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/slides"
)

// Deck navigation commands. Any other command name is sent to the visible slide
// as a slides.Action.
const (
	CmdNext     = "next"
	CmdPrevious = "previous"
	CmdFirst    = "first"
	CmdLast     = "last"
	CmdGoTo     = "goto"
)

// Command is a remote presenter instruction.
type Command struct {
	Name string `json:"command" mapstructure:"command"`
	// Index is the target of CmdGoTo.
	Index int `json:"index,omitempty" mapstructure:"index"`
	// Arg is the node, mode or scenario of a slide action.
	Arg string `json:"arg,omitempty" mapstructure:"arg"`
}

// IsNavigation reports whether the command moves the deck rather than the slide.
func (c Command) IsNavigation() bool {
	switch c.Name {
	case CmdNext, CmdPrevious, CmdFirst, CmdLast, CmdGoTo:
		return true
	}
	return false
}

// apply runs cmd on ctrl. Navigating past either end is a no-op, not an error.
func apply(ctrl *deck.Controller, cmd Command) error {
	switch cmd.Name {
	case CmdNext:
		ctrl.Next()
	case CmdPrevious:
		ctrl.Previous()
	case CmdFirst:
		ctrl.First()
	case CmdLast:
		ctrl.Last()
	case CmdGoTo:
		if cmd.Index < 0 || cmd.Index >= len(ctrl.Entries()) {
			return fmt.Errorf("%w: index %d", domain.ErrSlideNotFound, cmd.Index)
		}
		ctrl.GoTo(cmd.Index)
	case "":
		return fmt.Errorf("%w: empty command", domain.ErrUnknownCommand)
	default:
		slide, ok := ctrl.Current().(slides.Interactive)
		if !ok {
			return fmt.Errorf("%w: %s on slide %s", domain.ErrUnknownCommand, cmd.Name, ctrl.State().SlideID)
		}
		return slide.Do(slides.Action(cmd.Name), cmd.Arg)
	}
	return nil
}
