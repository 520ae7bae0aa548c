/*
Package sequencer walks a fixed step chain for a diagram walkthrough.

A Sequencer is the single state machine behind every slide's "Run Flow" controls: it
advances manually or on an auto-play timer, supports out-of-band node focus, and can hold
the run at gated steps until a decision resolves them. Renderers consume its ActiveSet and
CurrentStep.

All timing goes through a Clock and a ScopedTimer. Any operation that changes the chain
position cancels the pending timer, and a callback whose timer was cancelled or superseded
never runs, so a late tick can never mutate a chain that is no longer displayed.

	seq := sequencer.New([]string{"input", "planner", "output"},
		sequencer.WithInterval(3*time.Second),
		sequencer.WithOnChange(func(s sequencer.Snapshot) { render(s) }),
	)
	defer seq.Close()
	seq.Start(true)
*/
package sequencer
