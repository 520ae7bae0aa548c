package showcase_test

import (
	"fmt"
	"log"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/sequencer"
)

// ExampleLoad mounts the embedded deck and moves to the second slide.
// A still clock keeps the slide timers from firing.
func ExampleLoad() {
	p, err := showcase.Load("")
	if err != nil {
		log.Fatal(err)
	}

	ctrl := p.NewController(deck.WithClock(sequencer.StillClock()))
	defer ctrl.Close()

	fmt.Println(ctrl.State().Counter(), ctrl.State().Title)
	ctrl.Next()
	fmt.Println(ctrl.State().Counter(), ctrl.State().Title)
	// Output:
	// 01/09 Cover
	// 02/09 Five Core Components
}
