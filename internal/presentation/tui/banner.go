package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"      _                                         ", "#43a047"},
	{"  ___| |__   _____      _____ __ _ ___  ___     ", "#26a69a"},
	{" / __| '_ \\ / _ \\ \\ /\\ / / __/ _` / __|/ _ \\", "#00acc1"},
	{" \\__ \\ | | | (_) \\ V  V / (_| (_| \\__ \\  __/", "#7e57c2"},
	{" |___/_| |_|\\___/ \\_/\\_/ \\___\\__,_|___/\\___|", "#fb8c00"},
}

// PrintBanner writes the showcase banner, colored with the node category palette.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
