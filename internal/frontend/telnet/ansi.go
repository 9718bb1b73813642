// Package telnet carries the wire protocol for player sessions: a TCP
// acceptor, RFC 854 command handling, and the ANSI styling the game
// uses to paint rooms, speech, and combat.
package telnet

import "fmt"

// The styling palette. Only the codes the game's output actually uses
// are defined; handlers pick from this set rather than writing escape
// sequences inline.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

// Colorize styles text with one code and resets after it, so a colored
// room name never bleeds into the description that follows.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf is Colorize over a Sprintf.
func Colorf(color, format string, args ...interface{}) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

// StripANSI drops every \033[...m sequence from s. Tests assert on
// plain text and width math needs the printable length, not the styled
// one. An unterminated escape at the end of the string passes through
// untouched.
func StripANSI(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}
