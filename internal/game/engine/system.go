package engine

import (
	"fmt"
	"strings"

	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/session"
)

// handleRest recovers HP and MP up to the configured amounts, capped at
// the maximums. Resting is refused mid-combat before the dispatch ever
// reaches here, but the guard stays for direct calls.
func (e *Engine) handleRest(sess *session.Session) CommandResult {
	if sess.InCombat {
		return failure("You can't rest while fighting for your life!")
	}

	p := sess.Player
	hpGain := min(e.cfg.RestHPRecovery, p.MaxHP-p.HP)
	mpGain := min(e.cfg.RestMPRecovery, p.MaxMP-p.MP)
	if hpGain <= 0 && mpGain <= 0 {
		return CommandResult{Success: true, Message: "You rest for a moment, but feel no different."}
	}

	p.HP += hpGain
	p.MP += mpGain
	return CommandResult{
		Success:      true,
		Message:      fmt.Sprintf("You rest for a while. (+%d HP, +%d MP)", hpGain, mpGain),
		StateChanges: true,
	}
}

// handleHelp lists the canonical verbs the parser understands.
func (e *Engine) handleHelp() CommandResult {
	verbs := command.CanonicalVerbs()
	return CommandResult{
		Success: true,
		Message: "You can: " + strings.Join(verbs, ", ") + ".\nMost verbs accept synonyms, and single directions move you.",
	}
}

// handleRestart resets the shared world and gives the issuing player a
// fresh character at the starting room. Every connected session feels the
// world reset; only the issuer's character is replaced.
func (e *Engine) handleRestart(sess *session.Session) CommandResult {
	oldRoomID := sess.Player.Location
	name := sess.Player.Name

	e.store.ResetAll()
	fresh := e.NewPlayer(name)
	sess.Player = fresh
	sess.InCombat = false

	if err := e.sessions.Move(sess.UID, oldRoomID, fresh.Location); err != nil {
		e.logger.Warn("room occupancy update failed on restart")
	}
	e.sessions.BroadcastAll(sess.UID, "The world shudders and settles, as if waking from a dream.")

	room, ok := e.store.Room(fresh.Location)
	if !ok {
		e.logger.Error("starting room missing after restart")
		return failure(internalErrorMessage)
	}
	fresh.MarkVisited(room.ID)

	msg := "The world fades to black, then resolves anew.\n\n" +
		e.RoomDescription(room, fresh, true)
	room.State["visited"] = true

	return CommandResult{
		Success:      true,
		Message:      msg,
		StateChanges: true,
		RoomChanged:  true,
	}
}

// handleAttack starts combat against a present hostile NPC. The engine
// only opens the encounter; resolution belongs to the combat mode driven
// by the transport.
func (e *Engine) handleAttack(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	room, ok := e.CurrentRoom(sess)
	if !ok {
		return failure(internalErrorMessage)
	}

	var target, targetName string
	for _, npc := range presentNPCs(room, sess.Player, e.store) {
		if cmd.Noun != "" && !strings.EqualFold(npc.Name, cmd.Noun) && npc.ID != cmd.Noun {
			continue
		}
		target = npc.ID
		targetName = npc.Name
		break
	}
	if target == "" {
		if cmd.Noun != "" {
			return failure(fmt.Sprintf("There is no %s here to attack.", cmd.Noun))
		}
		return failure("There is nothing here to attack.")
	}

	sess.InCombat = true
	return CommandResult{
		Success:         true,
		Message:         "You ready yourself for battle!",
		CombatTriggered: true,
		ModalData:       map[string]string{"enemy": target, "enemy_name": targetName},
	}
}

// handleCast channels a learned skill. Outside combat only utility casts
// make sense, so an unlearned or unnamed skill is refused and anything
// else reports the attempt for the combat mode to resolve.
func (e *Engine) handleCast(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Cast what?")
	}
	p := sess.Player
	skill := strings.ReplaceAll(strings.ToLower(cmd.Noun), " ", "_")
	if !p.HasSkill(skill) && !p.HasSkill(cmd.Noun) {
		return failure(fmt.Sprintf("You don't know how to cast %s.", cmd.Noun))
	}
	if sess.InCombat {
		return CommandResult{
			Success:   true,
			Message:   fmt.Sprintf("You begin casting %s!", cmd.Noun),
			ModalData: map[string]string{"skill": skill},
		}
	}
	return CommandResult{
		Success: true,
		Message: fmt.Sprintf("You trace the sign of %s, and the air hums briefly.", cmd.Noun),
	}
}
