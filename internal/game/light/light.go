// Package light derives whether a player can currently see. This single
// predicate gates description variants, object and exit listings, and the
// darkness-related NPC spawn conditions.
package light

import (
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/world"
)

// HasLight reports whether p can see inside room: either the room has its
// own light, or the item equipped in the light_source slot is switched on
// (its "<itemId>_on" player flag is true).
//
// Precondition: room and p must be non-nil.
func HasLight(room *world.Room, p *player.Player) bool {
	if room.Lighting.IsLit {
		return true
	}
	itemID, ok := p.Equipped[player.SlotLightSource]
	if !ok || itemID == "" {
		return false
	}
	return p.Flags[itemID+"_on"]
}
