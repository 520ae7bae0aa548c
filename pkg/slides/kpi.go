package slides

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aretw0/showcase/pkg/domain"
)

// Tone is the emphasis a KPI value is shown with.
type Tone string

const (
	ToneMuted   Tone = "muted"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneSuccess Tone = "success"
)

// KPI is a rendered KPI card.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  Tone   `json:"tone"`
}

var numbers = message.NewPrinter(language.English)

// kpiAt renders k for the given run position. Before recovery the agent-assisted run
// still shows the exposure; from recovery on it shows the protected values.
func kpiAt(k domain.KPIDef, step int, manual bool, recovery int) KPI {
	out := KPI{Label: k.Label, Value: "--", Tone: ToneMuted}
	switch {
	case step < 0:
	case manual:
		out.Value, out.Tone = formatKPI(k, k.Without, k.WithoutUnit), ToneDanger
		if k.Words != nil {
			out.Value = k.Words.Danger
		}
	case step < recovery && !k.Positive:
		out.Value, out.Tone = formatKPI(k, k.Without, k.WithoutUnit), ToneDanger
		if k.Words != nil {
			out.Value = k.Words.Danger
			if step < 1 {
				out.Value, out.Tone = k.Words.Pending, ToneWarning
			}
		}
	case step >= recovery:
		out.Tone = ToneSuccess
		switch {
		case k.Words != nil:
			out.Value = k.Words.Safe
		case k.Positive:
			out.Value = formatKPI(k, k.With, k.WithUnit)
		default:
			out.Value = formatKPI(k, 0, k.WithUnit)
		}
	default:
		out.Value = formatKPI(k, 0, k.WithUnit)
	}
	return out
}

func formatKPI(k domain.KPIDef, v float64, unit string) string {
	return k.Prefix + numbers.Sprintf("%.*f", k.Decimals, v) + unit
}
