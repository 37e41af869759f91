package theme

import (
	"fmt"
)

// Banner returns an arcade-cabinet themed banner.
func Banner() string {
	// ANSI colors for a CRT arcade feel
	const cyan = "\033[36m"
	const magenta = "\033[35m"
	const yellow = "\033[33m"
	const reset = "\033[0m"

	art := "" +
		"  ▸▸▸   " + magenta + "QUESTPICK" + reset + "   ◂◂◂\n" +
		cyan + "   ▄█▀▀█▄  ▄█▀▀█▄  ▄█▀▀█▄\n" + reset +
		cyan + "  ▐█ ▓▓ █▌▐█ ▒▒ █▌▐█ ░░ █▌\n" + reset +
		cyan + "   ▀█▄▄█▀  ▀█▄▄█▀  ▀█▄▄█▀\n" + reset +
		yellow + "    ──────────────────────────\n" + reset +
		"   your next game, picked for tonight ▸\n"

	coins := magenta + "       ●    ○     ●     ○    ●\n" + reset
	return art + coins
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
