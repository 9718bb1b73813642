package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/equipment"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/session"
)

// handleInventory lists carried items and, separately, what is equipped.
// Equipped items live outside the inventory list, so their display names
// come from the static definitions.
func (e *Engine) handleInventory(sess *session.Session) CommandResult {
	p := sess.Player

	var carried []string
	for _, item := range p.Inventory {
		line := "  " + item.Name
		if item.Quantity > 1 {
			line += fmt.Sprintf(" (x%d)", item.Quantity)
		}
		carried = append(carried, line)
	}
	sort.Strings(carried)

	var equipped []string
	for slot, itemID := range p.Equipped {
		if itemID == "" {
			continue
		}
		name := itemID
		if def, ok := e.store.Definition(itemID); ok {
			name = def.Name
		}
		equipped = append(equipped, fmt.Sprintf("  %s (%s)", name, slot))
	}
	sort.Strings(equipped)

	if len(carried) == 0 && len(equipped) == 0 {
		return CommandResult{Success: true, Message: "You aren't carrying anything."}
	}

	var sb strings.Builder
	if len(carried) > 0 {
		sb.WriteString("You are carrying:\n")
		sb.WriteString(strings.Join(carried, "\n"))
	} else {
		sb.WriteString("You are carrying nothing loose.")
	}
	if len(equipped) > 0 {
		sb.WriteString("\nEquipped:\n")
		sb.WriteString(strings.Join(equipped, "\n"))
	}
	return CommandResult{Success: true, Message: sb.String()}
}

// handleUse applies a carried usable item. Light sources route to the
// light handler so "use lantern" and "light lantern" behave identically.
func (e *Engine) handleUse(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Use what?")
	}

	p := sess.Player
	idx := p.FindItem(cmd.Noun)
	if idx < 0 {
		if _, slot, ok := e.equip.EquippedMatching(p, cmd.Noun); ok && slot == player.SlotLightSource {
			return e.handleLight(sess, cmd)
		}
		return failure(fmt.Sprintf("You aren't carrying any %s.", cmd.Noun))
	}
	item := p.Inventory[idx]
	if item.Slot == player.SlotLightSource {
		return failure(fmt.Sprintf("You need to equip the %s before you can use it.", item.Name))
	}
	if !item.Usable {
		return failure(fmt.Sprintf("You can't use the %s here.", item.Name))
	}

	flag := item.ID + "_used"
	if p.Flags[flag] {
		return failure(fmt.Sprintf("Nothing more happens with the %s.", item.Name))
	}
	p.Flags[flag] = true
	return CommandResult{
		Success:      true,
		Message:      fmt.Sprintf("You use the %s.", item.Name),
		StateChanges: true,
	}
}

// handleEquip places a carried item in its slot. Occupied slots must be
// freed explicitly; there is no implicit swap.
func (e *Engine) handleEquip(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Equip what?")
	}

	p := sess.Player
	idx := p.FindItem(cmd.Noun)
	if idx < 0 {
		return failure(fmt.Sprintf("You aren't carrying any %s.", cmd.Noun))
	}
	item := p.Inventory[idx]

	err := e.equip.Equip(p, item.ID)
	switch {
	case err == nil:
		return CommandResult{
			Success:      true,
			Message:      fmt.Sprintf("You equip the %s.", item.Name),
			StateChanges: true,
		}
	case errors.Is(err, equipment.ErrNotEquippable):
		return failure(fmt.Sprintf("You can't equip the %s.", item.Name))
	case errors.Is(err, equipment.ErrSlotOccupied):
		return failure(fmt.Sprintf("You already have something equipped in your %s slot.", item.Slot))
	case errors.Is(err, equipment.ErrNoDefinition):
		e.logger.Error("equip failed, no definition for item")
		return failure(internalErrorMessage)
	default:
		return failure(internalErrorMessage)
	}
}

// handleUnequip frees a slot and returns the item to plain inventory. An
// active light source goes out when unequipped, since the light resolver
// only honors the equipped light_source slot.
func (e *Engine) handleUnequip(sess *session.Session, cmd command.ParsedCommand) CommandResult {
	if cmd.Noun == "" {
		return failure("Unequip what?")
	}

	p := sess.Player
	itemID, slot, ok := e.equip.EquippedMatching(p, cmd.Noun)
	if !ok {
		return failure(fmt.Sprintf("You don't have any %s equipped.", cmd.Noun))
	}

	if err := e.equip.Unequip(p, itemID); err != nil {
		e.logger.Error("unequip failed")
		return failure(internalErrorMessage)
	}
	if slot == player.SlotLightSource {
		p.Flags[itemID+"_on"] = false
	}

	name := itemID
	if idx := p.FindItem(itemID); idx >= 0 {
		name = p.Inventory[idx].Name
	}
	return CommandResult{
		Success:      true,
		Message:      fmt.Sprintf("You unequip the %s.", name),
		StateChanges: true,
	}
}
