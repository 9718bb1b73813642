package engine

import (
	"github.com/rowanvale/lantern/internal/game/light"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/world"
)

// spawnPredicate evaluates one named NPC presence condition.
type spawnPredicate func(room *world.Room, p *player.Player, store *world.Store) bool

// spawnPredicates is the registry of named spawn/despawn conditions.
// Names not registered here are read as global world-state flags, so
// content can gate NPCs on narrative flags without code changes.
var spawnPredicates = map[string]spawnPredicate{
	"always": func(*world.Room, *player.Player, *world.Store) bool {
		return true
	},
	"darkness": func(room *world.Room, p *player.Player, _ *world.Store) bool {
		return !light.HasLight(room, p)
	},
	"light_present": func(room *world.Room, p *player.Player, _ *world.Store) bool {
		return light.HasLight(room, p)
	},
	"visited": func(room *world.Room, _ *player.Player, _ *world.Store) bool {
		return room.State["visited"]
	},
}

func evalCondition(name string, room *world.Room, p *player.Player, store *world.Store) bool {
	if pred, ok := spawnPredicates[name]; ok {
		return pred(room, p, store)
	}
	return store.Flag(name)
}

// npcPresent recomputes whether an NPC is currently in the room: every
// spawn condition holds and no despawn condition does. Presence is never
// cached.
func npcPresent(npc *world.NPC, room *world.Room, p *player.Player, store *world.Store) bool {
	for _, cond := range npc.SpawnConditions {
		if !evalCondition(cond, room, p, store) {
			return false
		}
	}
	for _, cond := range npc.DespawnConditions {
		if evalCondition(cond, room, p, store) {
			return false
		}
	}
	return true
}

// presentNPCs returns the room's currently spawned NPCs in declared order.
func presentNPCs(room *world.Room, p *player.Player, store *world.Store) []*world.NPC {
	var out []*world.NPC
	for _, npc := range room.NPCs {
		if npcPresent(npc, room, p, store) {
			out = append(out, npc)
		}
	}
	return out
}
