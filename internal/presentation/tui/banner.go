package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{`  __  __            _             `, "#818cf8"},
		{` |  \/  | __ _ _ __| | _______   __`, "#a78bfa"},
		{` | |\/| |/ _' | '__| |/ / _ \ \ / /`, "#c084fc"},
		{` | |  | | (_| | |  |   < (_) \ V / `, "#e879f9"},
		{` |_|  |_|\__,_|_|  |_|\_\___/ \_/  `, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
