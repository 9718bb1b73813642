package telnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColorizeWrapsAndResets(t *testing.T) {
	assert.Equal(t, "\033[91mThe ghoul lunges!\033[0m", Colorize(BrightRed, "The ghoul lunges!"))
}

func TestColorfFormats(t *testing.T) {
	assert.Equal(t, "\033[32mHP: 12/30\033[0m", Colorf(Green, "HP: %d/%d", 12, 30))
}

func TestStripANSI(t *testing.T) {
	styled := Colorize(Bold, "Hermit's Hut") + "\r\n" + Colorize(Dim, "A low turf roof.")
	assert.Equal(t, "Hermit's Hut\r\nA low turf roof.", StripANSI(styled))
}

func TestStripANSIPlainTextUntouched(t *testing.T) {
	assert.Equal(t, "go north", StripANSI("go north"))
	assert.Equal(t, "", StripANSI(""))
}

func TestStripANSIUnterminatedEscape(t *testing.T) {
	assert.Equal(t, "\033[3", StripANSI("\033[3"))
}

func TestStripANSIUndoesAnyPaletteColor(t *testing.T) {
	palette := []string{
		Bold, Dim, Red, Green, Yellow, Cyan,
		BrightRed, BrightGreen, BrightYellow, BrightCyan, BrightWhite,
	}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ,.!]{0,60}`).Draw(t, "text")
		color := rapid.SampledFrom(palette).Draw(t, "color")
		assert.Equal(t, text, StripANSI(Colorize(color, text)))
	})
}

func TestStripANSINeverEmitsEscape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ,.!]{0,40}`).Draw(t, "text")
		stripped := StripANSI(Bold + Yellow + text + Reset)
		assert.NotContains(t, stripped, "\033")
		assert.LessOrEqual(t, len(stripped), len(text))
	})
}
