package engine

import (
	"fmt"
	"strings"

	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/light"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/session"
	"github.com/rowanvale/lantern/internal/game/world"
)

// handleTake moves a room object into the player's inventory. Taken objects
// never reappear in room listings, even if later dropped.
func (e *Engine) handleTake(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Take what?")
	}

	room, ok := e.CurrentRoom(sess)
	if !ok {
		return failure(internalErrorMessage)
	}
	if !light.HasLight(room, sess.Player) {
		return failure("It's too dark to see anything here.")
	}

	obj, ok := room.FindObject(cmd.Noun)
	if !ok || (obj.Placement == world.PlacementHidden && !containerRevealed(room)) {
		return failure(fmt.Sprintf("You don't see any %s here.", cmd.Noun))
	}
	if !obj.Takeable {
		return failure(fmt.Sprintf("You can't take the %s.", obj.Name))
	}

	sess.Player.AddItem(player.Item{
		ID:          obj.ID,
		Name:        obj.Name,
		Description: obj.Description,
		Quantity:    1,
		Equippable:  obj.Slot != "",
		Slot:        obj.Slot,
		Usable:      obj.Usable,
		Weight:      obj.Weight,
	})
	obj.Taken = true

	return CommandResult{
		Success:      true,
		Message:      fmt.Sprintf("You take the %s.", obj.Name),
		StateChanges: true,
	}
}

// handleDrop removes an item from the inventory. The object does not
// return to the room listing; once taken, a definition stays taken.
func (e *Engine) handleDrop(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Drop what?")
	}

	p := sess.Player
	idx := p.FindItem(cmd.Noun)
	if idx < 0 {
		if _, _, ok := e.equip.EquippedMatching(p, cmd.Noun); ok {
			return failure("You'll have to unequip it first.")
		}
		return failure(fmt.Sprintf("You aren't carrying any %s.", cmd.Noun))
	}
	item := p.Inventory[idx]

	p.RemoveItem(item.ID)
	return CommandResult{
		Success:      true,
		Message:      fmt.Sprintf("You drop the %s.", item.Name),
		StateChanges: true,
	}
}

// handleExamine describes a room object or carried item. Room objects take
// precedence over inventory when a term matches both. Examining a room
// object with an ability_learned effect grants the named skill once and
// records it in room state so the grant never repeats.
func (e *Engine) handleExamine(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Examine what?")
	}

	room, ok := e.CurrentRoom(sess)
	if !ok {
		return failure(internalErrorMessage)
	}

	p := sess.Player
	if light.HasLight(room, p) {
		if obj, ok := room.FindObject(cmd.Noun); ok &&
			(obj.Placement != world.PlacementHidden || containerRevealed(room)) {
			msg := obj.Description
			changed := false
			if skill, ok := obj.StateChanges["ability_learned"]; ok && !room.State[skill] {
				room.State[skill] = true
				if !p.HasSkill(skill) {
					p.LearnSkill(skill)
					msg += fmt.Sprintf("\n\nYou have learned %s!", skill)
				}
				changed = true
			}
			return CommandResult{Success: true, Message: msg, StateChanges: changed}
		}
	}

	if idx := p.FindItem(cmd.Noun); idx >= 0 {
		return CommandResult{Success: true, Message: p.Inventory[idx].Description}
	}
	if itemID, _, ok := e.equip.EquippedMatching(p, cmd.Noun); ok {
		if def, found := e.store.Definition(itemID); found {
			return CommandResult{Success: true, Message: def.Description}
		}
	}

	if !light.HasLight(room, p) {
		return failure("It's too dark to see anything here.")
	}
	return failure(fmt.Sprintf("You don't see any %s here.", cmd.Noun))
}

// handleOpen serves both open and close. Container objects carry an
// open/closed flag in room state keyed by object id.
func (e *Engine) handleOpen(sess *session.Session, cmd command.ParsedCommand, open bool) CommandResult {
	verb := "open"
	if !open {
		verb = "close"
	}
	if cmd.Noun == "" {
		return failure(fmt.Sprintf("%s what?", capitalize(verb)))
	}

	room, ok := e.CurrentRoom(sess)
	if !ok {
		return failure(internalErrorMessage)
	}
	if !light.HasLight(room, sess.Player) {
		return failure("It's too dark to see anything here.")
	}

	obj, ok := room.FindObject(cmd.Noun)
	if !ok || obj.Placement == world.PlacementHidden {
		return failure(fmt.Sprintf("You don't see any %s here.", cmd.Noun))
	}
	if obj.Placement != world.PlacementContainer {
		return failure(fmt.Sprintf("You can't %s the %s.", verb, obj.Name))
	}

	flag := obj.ID + "_open"
	if room.State[flag] == open {
		if open {
			return failure(fmt.Sprintf("The %s is already open.", obj.Name))
		}
		return failure(fmt.Sprintf("The %s is already closed.", obj.Name))
	}
	room.State[flag] = open

	msg := fmt.Sprintf("You %s the %s.", verb, obj.Name)
	if open {
		if line := containedObjectsLine(room, obj.ID); line != "" {
			msg += "\n\n" + line
		}
	}
	return CommandResult{Success: true, Message: msg, StateChanges: true}
}

// containerRevealed reports whether any container in the room stands open.
// Hidden-placement objects stay unreachable until then.
func containerRevealed(room *world.Room) bool {
	for _, obj := range room.Objects {
		if obj.Placement == world.PlacementContainer && room.State[obj.ID+"_open"] {
			return true
		}
	}
	return false
}

// containedObjectsLine lists untaken hidden-placement objects revealed by
// opening the container.
func containedObjectsLine(room *world.Room, containerID string) string {
	var names []string
	for _, obj := range room.Objects {
		if obj.Taken || obj.ID == containerID {
			continue
		}
		if obj.Placement == world.PlacementHidden {
			names = append(names, obj.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "Inside you find: " + strings.Join(names, ", ") + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
