// Package equipment moves items between a player's inventory and equipment
// slots, resolving identity against the static object definitions.
package equipment

import (
	"errors"

	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/world"
)

// Sentinel errors the engine maps to user-facing messages.
var (
	// ErrNotCarried means the item is not in the player's inventory.
	ErrNotCarried = errors.New("item not in inventory")
	// ErrNotEquippable means the item has no slot or is not equippable.
	ErrNotEquippable = errors.New("item not equippable")
	// ErrSlotOccupied means the target slot already holds an item. There is
	// no implicit swap; the caller must unequip first.
	ErrSlotOccupied = errors.New("slot occupied")
	// ErrNotEquipped means no slot holds the requested item.
	ErrNotEquipped = errors.New("item not equipped")
	// ErrNoDefinition means the equipped ID has no static definition, so
	// the inventory entry cannot be reconstructed.
	ErrNoDefinition = errors.New("no static definition for item")
)

// Manager resolves equipment operations against the world's definition
// index.
type Manager struct {
	store *world.Store
}

// NewManager creates a Manager backed by the given store.
//
// Precondition: store must be non-nil.
func NewManager(store *world.Store) *Manager {
	return &Manager{store: store}
}

// Equip moves an inventory item into its equipment slot.
//
// Postcondition: on success the item is removed from the inventory and its
// ID recorded under the slot. On any error the player is unchanged.
func (m *Manager) Equip(p *player.Player, itemID string) error {
	idx := -1
	for i, item := range p.Inventory {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotCarried
	}

	item := p.Inventory[idx]
	if !item.Equippable || item.Slot == "" {
		return ErrNotEquippable
	}
	if occupant := p.Equipped[item.Slot]; occupant != "" {
		return ErrSlotOccupied
	}

	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	p.Equipped[item.Slot] = item.ID
	return nil
}

// Unequip clears the slot holding itemID and returns the item to the
// inventory. Equipped items are tracked by ID only, so the full entry is
// reconstructed from the static object definition.
//
// Postcondition: on success the slot is empty and the inventory gained one
// entry with the definition's display data. On any error the player is
// unchanged.
func (m *Manager) Unequip(p *player.Player, itemID string) error {
	slot := ""
	for s, id := range p.Equipped {
		if id == itemID {
			slot = s
			break
		}
	}
	if slot == "" {
		return ErrNotEquipped
	}

	def, ok := m.store.Definition(itemID)
	if !ok {
		return ErrNoDefinition
	}

	p.AddItem(player.Item{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Quantity:    1,
		Equippable:  true,
		Slot:        def.Slot,
		Usable:      def.Usable,
		Weight:      def.Weight,
	})
	delete(p.Equipped, slot)
	return nil
}

// EquippedMatching returns the equipped item ID whose definition matches
// term by ID, name, or synonym, along with its slot.
//
// Precondition: term should be lowercased and trimmed.
// Postcondition: Returns ("", "", false) when nothing equipped matches.
func (m *Manager) EquippedMatching(p *player.Player, term string) (itemID, slot string, ok bool) {
	for s, id := range p.Equipped {
		if id == "" {
			continue
		}
		if id == term {
			return id, s, true
		}
		if def, found := m.store.Definition(id); found && def.Matches(term) {
			return id, s, true
		}
	}
	return "", "", false
}
