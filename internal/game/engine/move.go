package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/gate"
	"github.com/rowanvale/lantern/internal/game/session"
)

// handleGo resolves a direction against the current room's exits, runs the
// requirement gate, and moves the player. A destination missing from the
// store rolls the move back and reports an internal error instead of
// leaving the player in an unresolved room.
func (e *Engine) handleGo(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	dir := strings.TrimSpace(cmd.Noun)
	if dir == "" {
		return failure("Go where?")
	}

	room, ok := e.CurrentRoom(sess)
	if !ok {
		e.logger.Error("session in unknown room",
			zap.String("uid", sess.UID), zap.String("room", sess.Player.Location))
		return failure(internalErrorMessage)
	}

	exit, ok := room.Exits[dir]
	if !ok {
		return failure("You can't go that way.")
	}

	if decision := gate.CanUseExit(exit, sess.Player, e.store); !decision.Allowed {
		return failure(decision.Message)
	}

	p := sess.Player
	oldRoomID := p.Location
	p.Location = exit.Target
	visitedAdded := p.MarkVisited(exit.Target)

	dest, ok := e.store.Room(exit.Target)
	if !ok {
		// Dangling exit target: roll back before anyone can observe it.
		p.Location = oldRoomID
		if visitedAdded {
			p.VisitedRooms = p.VisitedRooms[:len(p.VisitedRooms)-1]
		}
		e.logger.Error("exit targets unknown room",
			zap.String("uid", sess.UID),
			zap.String("from", oldRoomID),
			zap.String("direction", dir),
			zap.String("target", exit.Target))
		return failure(internalErrorMessage)
	}

	if err := e.sessions.Move(sess.UID, oldRoomID, dest.ID); err != nil {
		e.logger.Warn("room occupancy update failed", zap.Error(err))
	}
	e.sessions.Broadcast(oldRoomID, sess.UID, fmt.Sprintf("%s leaves %s.", p.Name, dir))
	e.sessions.Broadcast(dest.ID, sess.UID, fmt.Sprintf("%s arrives.", p.Name))

	var sb strings.Builder
	if exit.TravelMessage != "" {
		sb.WriteString(exit.TravelMessage)
		sb.WriteString("\n\n")
	}
	sb.WriteString(e.RoomDescription(dest, p, false))
	if dest.Hooks.OnEnter != "" {
		sb.WriteString("\n\n")
		sb.WriteString(dest.Hooks.OnEnter)
	}
	if room.Hooks.OnExit != "" {
		e.sessions.Broadcast(oldRoomID, sess.UID, room.Hooks.OnExit)
	}
	dest.State["visited"] = true

	result := CommandResult{
		Success:      true,
		Message:      sb.String(),
		StateChanges: true,
		RoomChanged:  true,
	}

	// Hostile NPCs whose spawn conditions hold force combat on entry; the
	// session stays in combat until the external combat mode clears it.
	for _, npc := range presentNPCs(dest, p, e.store) {
		if npc.Hostile {
			sess.InCombat = true
			result.CombatTriggered = true
			result.ModalData = map[string]string{"enemy": npc.ID, "enemy_name": npc.Name}
			break
		}
	}

	return result
}
