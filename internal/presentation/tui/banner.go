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
	{`  ___ ___ _ __  __ _ / _|___ _ _ ___ `, "#ef4444"},
	{` (_-</ -_) '  \/ _` + "`" + ` |  _/ _ \ '_/ _ \`, "#f59e0b"},
	{` /__/\___|_|_|_\__,_|_| \___/_| \___/`, "#22c55e"},
}

// PrintBanner writes the semaforo banner, one signal colour per line.
func PrintBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, p.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
