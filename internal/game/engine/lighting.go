package engine

import (
	"fmt"

	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/session"
)

// handleTurn routes "turn on X" / "turn X on" to light and the off forms
// to extinguish. The parser leaves the preposition split for us: a leading
// "on"/"off" arrives as Preposition with the target in IndirectObject,
// while a trailing one arrives with the target in Noun.
func (e *Engine) handleTurn(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	target := cmd.IndirectObject
	switch cmd.Preposition {
	case "on":
		if target == "" {
			target = cmd.Noun
		}
		return e.handleLight(sess, command.ParsedCommand{Verb: command.VerbLight, Noun: target, Valid: true})
	case "off":
		if target == "" {
			target = cmd.Noun
		}
		return e.handleExtinguish(sess, command.ParsedCommand{Verb: command.VerbExtinguish, Noun: target, Valid: true})
	}
	return failure("Turn what on or off?")
}

// resolveLightSource finds the equipped light source matching term, or the
// equipped light source when term names a carried item in that slot. Only
// the equipped light_source slot can shed light; a lantern in the pack
// does nothing.
func (e *Engine) resolveLightSource(p *player.Player, term string) (itemID string, name string, ok bool) {
	equippedID, has := p.Equipped[player.SlotLightSource]
	if !has || equippedID == "" {
		return "", "", false
	}

	name = equippedID
	def, found := e.store.Definition(equippedID)
	if found {
		name = def.Name
	}

	if term == "" || term == equippedID {
		return equippedID, name, true
	}
	if found && def.Matches(term) {
		return equippedID, name, true
	}
	return "", "", false
}

// handleLight activates the equipped light source.
func (e *Engine) handleLight(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	p := sess.Player
	itemID, name, ok := e.resolveLightSource(p, cmd.Noun)
	if !ok {
		if cmd.Noun != "" && p.FindItem(cmd.Noun) >= 0 {
			return failure("You need to equip it before you can light it.")
		}
		return failure("You have no light source equipped.")
	}

	flag := itemID + "_on"
	if p.Flags[flag] {
		return failure(fmt.Sprintf("The %s is already lit.", name))
	}
	p.Flags[flag] = true

	msg := fmt.Sprintf("The %s flares to life, pushing back the darkness.", name)
	if room, ok := e.CurrentRoom(sess); ok && !room.Lighting.IsLit {
		msg += "\n\n" + e.RoomDescription(room, p, false)
	}
	return CommandResult{Success: true, Message: msg, StateChanges: true}
}

// handleExtinguish deactivates the equipped light source.
func (e *Engine) handleExtinguish(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	p := sess.Player
	itemID, name, ok := e.resolveLightSource(p, cmd.Noun)
	if !ok {
		return failure("You have no light source equipped.")
	}

	flag := itemID + "_on"
	if !p.Flags[flag] {
		return failure(fmt.Sprintf("The %s isn't lit.", name))
	}
	p.Flags[flag] = false

	msg := fmt.Sprintf("You extinguish the %s.", name)
	if room, ok := e.CurrentRoom(sess); ok && !room.Lighting.IsLit {
		msg += "\n\n" + e.RoomDescription(room, p, false)
	}
	return CommandResult{Success: true, Message: msg, StateChanges: true}
}
