package engine

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/light"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/session"
	"github.com/rowanvale/lantern/internal/game/world"
)

// fallbackDarkText covers rooms authored without a dark variant.
const fallbackDarkText = "It is pitch black. You can't see a thing."

// RoomDescription assembles the text a player sees for a room. It is a
// read-only query; transports may call it directly for presentation.
//
// In darkness only the dark text appears: no objects, no exits, no NPCs.
// When lit, the base variant is chosen in priority order: the first dynamic
// variant whose room-state flag is true, the long text for naturally unlit
// rooms the player is lighting, initial/long for verbose or first looks,
// then visited falling back to short for repeat plain looks.
func (e *Engine) RoomDescription(room *world.Room, p *player.Player, verbose bool) string {
	if !light.HasLight(room, p) {
		if room.Descriptions.Dark != "" {
			return room.Descriptions.Dark
		}
		return fallbackDarkText
	}

	var sb strings.Builder
	sb.WriteString(e.baseDescription(room, verbose))

	if line := visibleObjectsLine(room); line != "" {
		sb.WriteString("\n\n")
		sb.WriteString(line)
	}
	if line := exitsLine(room); line != "" {
		sb.WriteString("\n\n")
		sb.WriteString(line)
	}
	for _, npc := range presentNPCs(room, p, e.store) {
		sb.WriteString("\n\n")
		sb.WriteString(npc.Description)
	}
	return sb.String()
}

func (e *Engine) baseDescription(room *world.Room, verbose bool) string {
	for _, dyn := range room.Dynamic {
		if room.State[dyn.Flag] {
			return dyn.Text
		}
	}

	d := room.Descriptions
	if !room.Lighting.IsLit {
		// Naturally dark room seen by carried light.
		if d.Long != "" {
			return d.Long
		}
		return d.Initial
	}

	visited := room.State["visited"]
	if verbose || !visited {
		if !visited && d.Initial != "" {
			return d.Initial
		}
		if d.Long != "" {
			return d.Long
		}
		return d.Initial
	}

	if d.Visited != "" {
		return d.Visited
	}
	if d.Short != "" {
		return d.Short
	}
	return d.Long
}

// visibleObjectsLine lists untaken objects that are either always visible
// or conditionally visible with their light requirement met. The caller
// guarantees the room is lit, so RequiresLight is satisfied for every
// conditional object. Hidden placements and hidden visibility never list.
func visibleObjectsLine(room *world.Room) string {
	revealed := containerRevealed(room)
	var names []string
	for _, obj := range room.Objects {
		if obj.Taken {
			continue
		}
		if obj.Placement == world.PlacementHidden {
			if revealed {
				names = append(names, obj.Name)
			}
			continue
		}
		switch obj.Visibility {
		case world.VisibilityAlways, world.VisibilityConditional:
			names = append(names, obj.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "You can see: " + strings.Join(names, ", ") + "."
}

// exitsLine lists the non-hidden exit directions, sorted for stable output.
func exitsLine(room *world.Room) string {
	var dirs []string
	for dir, exit := range room.Exits {
		if !exit.Hidden {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return ""
	}
	sort.Strings(dirs)
	return "Exits: " + strings.Join(dirs, ", ") + "."
}

// handleLook serves the bare look command (verbose) and delegates
// "look <thing>" to examine.
func (e *Engine) handleLook(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun != "" {
		return e.handleExamine(sess, cmd)
	}

	room, ok := e.CurrentRoom(sess)
	if !ok {
		e.logger.Error("session in unknown room",
			zap.String("uid", sess.UID), zap.String("room", sess.Player.Location))
		return failure(internalErrorMessage)
	}

	msg := e.RoomDescription(room, sess.Player, true)
	if room.Hooks.OnLook != "" && light.HasLight(room, sess.Player) {
		msg += "\n\n" + room.Hooks.OnLook
	}
	room.State["visited"] = true
	return CommandResult{Success: true, Message: msg}
}
