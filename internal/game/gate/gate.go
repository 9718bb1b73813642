// Package gate evaluates whether a player may use a room exit.
package gate

import (
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/world"
)

// Default refusal messages per requirement kind, used when the exit carries
// no custom blocked message.
const (
	msgNoItem  = "You can't go that way."
	msgNoState = "The way is blocked."
	msgNoSkill = "You lack the required skill."
	msgNoStat  = "You're not capable of that."
)

// Decision is the outcome of an exit check.
type Decision struct {
	Allowed bool
	// Message is the refusal text; empty when Allowed.
	Message string
}

// CanUseExit checks the exit's single gating requirement against the player
// and the global world state.
//
// Precondition: exit and p must be non-nil; store must be non-nil when any
// exit carries a state requirement.
// Postcondition: exits without a requirement are always allowed. A denial
// carries the exit's BlockedMessage when set, else a kind-specific default.
func CanUseExit(exit *world.Exit, p *player.Player, store *world.Store) Decision {
	req := exit.Requirement
	if req == nil {
		return Decision{Allowed: true}
	}

	var ok bool
	var fallback string
	switch req.Kind {
	case world.RequireItem:
		ok = p.HasItem(req.ID)
		fallback = msgNoItem
	case world.RequireState:
		ok = store.Flag(req.ID)
		fallback = msgNoState
	case world.RequireSkill:
		ok = p.HasSkill(req.ID)
		fallback = msgNoSkill
	case world.RequireStat:
		value, known := p.Stat(req.ID)
		ok = known && value >= req.Value
		fallback = msgNoStat
	default:
		// Unknown kinds never pass; the loader rejects them at boot.
		fallback = msgNoState
	}

	if ok {
		return Decision{Allowed: true}
	}
	msg := exit.BlockedMessage
	if msg == "" {
		msg = fallback
	}
	return Decision{Message: msg}
}
