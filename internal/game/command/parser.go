package command

import (
	"fmt"
	"strings"
)

// ParsedCommand is the structured form of one line of player input.
type ParsedCommand struct {
	// Verb is the canonical verb the first token resolved to.
	Verb string
	// Noun is the primary object of the verb, possibly empty.
	Noun string
	// Preposition is the first preposition found after the verb, if any.
	Preposition string
	// IndirectObject is the text after the preposition, if any.
	IndirectObject string
	// Raw preserves the original input line.
	Raw string
	// Valid reports whether the input resolved to a known verb.
	Valid bool
	// Error is the user-facing message when Valid is false.
	Error string
}

// Parse turns a raw input line into a ParsedCommand.
//
// Precondition: none; input may be empty or arbitrary text.
// Postcondition: Returns an invalid result with a non-empty Error for empty
// input or an unrecognized first token; otherwise Valid is true and Verb is
// one of the canonical verbs.
func Parse(input string) ParsedCommand {
	raw := input
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ParsedCommand{
			Raw:   raw,
			Error: "Say something first.",
		}
	}

	tokens := strings.Fields(input)
	first := tokens[0]

	// Bare directions short-circuit to "go <direction>".
	if dir, ok := directionShortcuts[first]; ok && len(tokens) == 1 {
		return ParsedCommand{
			Verb:  VerbGo,
			Noun:  dir,
			Raw:   raw,
			Valid: true,
		}
	}

	verb, ok := verbSynonyms[first]
	if !ok {
		if dir, isDir := directionShortcuts[first]; isDir {
			// "north gate" style input still moves north.
			return ParsedCommand{
				Verb:  VerbGo,
				Noun:  dir,
				Raw:   raw,
				Valid: true,
			}
		}
		return ParsedCommand{
			Raw:   raw,
			Error: fmt.Sprintf("I don't know the word %q.", first),
		}
	}

	rest := stripDeterminers(tokens[1:])
	if len(rest) == 0 {
		return ParsedCommand{
			Verb:  verb,
			Raw:   raw,
			Valid: true,
		}
	}

	cmd := ParsedCommand{
		Verb:  verb,
		Raw:   raw,
		Valid: true,
	}

	// Only the first preposition splits the stream; later occurrences
	// remain part of the indirect object text.
	prepIdx := -1
	for i, tok := range rest {
		if prepositions[tok] {
			prepIdx = i
			break
		}
	}

	switch {
	case prepIdx < 0:
		cmd.Noun = strings.Join(rest, " ")
	case prepIdx == 0:
		// A leading preposition leaves the full stream as the noun so
		// handlers like "turn on lamp" can see the whole phrase.
		cmd.Noun = strings.Join(rest, " ")
		cmd.Preposition = rest[0]
		cmd.IndirectObject = strings.Join(rest[1:], " ")
	default:
		cmd.Noun = strings.Join(rest[:prepIdx], " ")
		cmd.Preposition = rest[prepIdx]
		cmd.IndirectObject = strings.Join(rest[prepIdx+1:], " ")
	}

	return cmd
}

// stripDeterminers removes filler words ("a", "the", ...) from tokens.
func stripDeterminers(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if !determiners[tok] {
			out = append(out, tok)
		}
	}
	return out
}
