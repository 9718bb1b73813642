// Package command provides the free-text command parser: verb synonym
// resolution, direction shortcuts, and noun/indirect-object splitting.
package command

import "sort"

// Canonical verbs the engine dispatches on.
const (
	VerbGo         = "go"
	VerbLook       = "look"
	VerbExamine    = "examine"
	VerbTake       = "take"
	VerbDrop       = "drop"
	VerbInventory  = "inventory"
	VerbUse        = "use"
	VerbTurn       = "turn"
	VerbLight      = "light"
	VerbExtinguish = "extinguish"
	VerbOpen       = "open"
	VerbClose      = "close"
	VerbAttack     = "attack"
	VerbCast       = "cast"
	VerbRest       = "rest"
	VerbHelp       = "help"
	VerbRestart    = "restart"
	VerbEquip      = "equip"
	VerbUnequip    = "unequip"
)

// verbSynonyms maps every accepted surface verb to its canonical verb.
var verbSynonyms = map[string]string{
	"go":     VerbGo,
	"walk":   VerbGo,
	"move":   VerbGo,
	"travel": VerbGo,
	"head":   VerbGo,

	"look": VerbLook,
	"l":    VerbLook,

	"examine": VerbExamine,
	"x":       VerbExamine,
	"inspect": VerbExamine,

	"take":  VerbTake,
	"get":   VerbTake,
	"grab":  VerbTake,
	"pick":  VerbTake,
	"steal": VerbTake,

	"drop":    VerbDrop,
	"discard": VerbDrop,
	"toss":    VerbDrop,

	"inventory": VerbInventory,
	"inv":       VerbInventory,
	"i":         VerbInventory,

	"use": VerbUse,

	"turn": VerbTurn,

	"light":  VerbLight,
	"ignite": VerbLight,

	"extinguish": VerbExtinguish,
	"douse":      VerbExtinguish,
	"snuff":      VerbExtinguish,

	"open": VerbOpen,

	"close": VerbClose,
	"shut":  VerbClose,

	"attack": VerbAttack,
	"fight":  VerbAttack,
	"hit":    VerbAttack,
	"kill":   VerbAttack,

	"cast": VerbCast,

	"rest":  VerbRest,
	"sleep": VerbRest,
	"camp":  VerbRest,

	"help": VerbHelp,
	"?":    VerbHelp,

	"restart": VerbRestart,

	"equip": VerbEquip,
	"wield": VerbEquip,
	"wear":  VerbEquip,

	"unequip": VerbUnequip,
	"remove":  VerbUnequip,
}

// directionShortcuts maps bare direction words and letters to a direction
// noun. These resolve to verb "go" without touching the general verb path.
var directionShortcuts = map[string]string{
	"north":     "north",
	"n":         "north",
	"south":     "south",
	"s":         "south",
	"east":      "east",
	"e":         "east",
	"west":      "west",
	"w":         "west",
	"northeast": "northeast",
	"ne":        "northeast",
	"northwest": "northwest",
	"nw":        "northwest",
	"southeast": "southeast",
	"se":        "southeast",
	"southwest": "southwest",
	"sw":        "southwest",
	"up":        "up",
	"u":         "up",
	"down":      "down",
	"d":         "down",
}

// determiners are filler words stripped from the tokens after the verb.
var determiners = map[string]bool{
	"a":    true,
	"an":   true,
	"the":  true,
	"some": true,
	"my":   true,
}

// prepositions split the remaining tokens into noun and indirect object.
// Only the first occurrence counts; later matches stay in the indirect text.
var prepositions = map[string]bool{
	"at":     true,
	"in":     true,
	"into":   true,
	"on":     true,
	"onto":   true,
	"off":    true,
	"to":     true,
	"with":   true,
	"from":   true,
	"under":  true,
	"behind": true,
	"about":  true,
}

// CanonicalVerbs returns the de-duplicated, sorted set of canonical verbs.
//
// Postcondition: the result is sorted and contains no duplicates.
func CanonicalVerbs() []string {
	seen := make(map[string]bool, len(verbSynonyms))
	for _, canonical := range verbSynonyms {
		seen[canonical] = true
	}
	verbs := make([]string, 0, len(seen))
	for v := range seen {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}
