// Package player defines the player state model, creation defaults, and the
// snapshot serialization contract the storage layer persists opaquely.
package player

import (
	"encoding/json"
	"strings"
)

// Equipment slots. Each slot holds at most one item ID at a time.
const (
	SlotWeapon      = "weapon"
	SlotArmor       = "armor"
	SlotAccessory   = "accessory"
	SlotLightSource = "light_source"
)

// Slots lists every equipment slot in display order.
var Slots = []string{SlotWeapon, SlotArmor, SlotAccessory, SlotLightSource}

// Defaults are the tunable numeric baselines for a fresh player.
type Defaults struct {
	BaseHP   int
	BaseMP   int
	BaseStat int
}

// Stats is the player's ability record. A fresh player starts with every
// stat at the same baseline.
type Stats struct {
	Strength  int `json:"strength"`
	Dexterity int `json:"dexterity"`
	Intellect int `json:"intellect"`
	Vitality  int `json:"vitality"`
	Luck      int `json:"luck"`
}

// Item is one carried inventory entry.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Equippable  bool    `json:"equippable"`
	Slot        string  `json:"slot,omitempty"`
	Usable      bool    `json:"usable"`
	Weight      float64 `json:"weight"`
}

// Player is one player's full mutable state. It is JSON-serializable so the
// transport or storage layer can persist and restore it without knowing its
// shape.
type Player struct {
	Name   string `json:"name"`
	Gold   int    `json:"gold"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"maxHp"`
	MP     int    `json:"mp"`
	MaxMP  int    `json:"maxMp"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
	Stats  Stats  `json:"stats"`
	// Inventory holds carried items. Equipped items are removed from this
	// list and tracked by ID in Equipped.
	Inventory []Item `json:"inventory"`
	// Equipped maps slot name to the equipped item's object ID.
	Equipped      map[string]string `json:"equippedItems"`
	StatusEffects []string          `json:"statusEffects"`
	Skills        []string          `json:"skills"`
	// Location is the current room ID.
	Location     string   `json:"location"`
	VisitedRooms []string `json:"visitedRooms"`
	// Flags is the player-local flag scope: narrative gates plus per-item
	// on/off state under "<itemId>_on" keys. Distinct from room state and
	// world-state flags.
	Flags map[string]bool `json:"flags"`
}

// New creates a fresh player at the given starting room.
//
// Postcondition: all five stats equal d.BaseStat, HP/MP equal their
// configured bases, level is 1, and inventory, skills, flags, and the
// visited-rooms list are empty.
func New(name, startingRoomID string, d Defaults) *Player {
	return &Player{
		Name:  name,
		Gold:  0,
		HP:    d.BaseHP,
		MaxHP: d.BaseHP,
		MP:    d.BaseMP,
		MaxMP: d.BaseMP,
		XP:    0,
		Level: 1,
		Stats: Stats{
			Strength:  d.BaseStat,
			Dexterity: d.BaseStat,
			Intellect: d.BaseStat,
			Vitality:  d.BaseStat,
			Luck:      d.BaseStat,
		},
		Inventory:     []Item{},
		Equipped:      make(map[string]string),
		StatusEffects: []string{},
		Skills:        []string{},
		Location:      startingRoomID,
		VisitedRooms:  []string{},
		Flags:         make(map[string]bool),
	}
}

// HasItem reports whether the inventory contains an entry with the given ID.
func (p *Player) HasItem(id string) bool {
	for _, item := range p.Inventory {
		if item.ID == id {
			return true
		}
	}
	return false
}

// FindItem returns the inventory index of the first item matching term by
// ID or lowercased name, or -1.
func (p *Player) FindItem(term string) int {
	for i, item := range p.Inventory {
		if item.ID == term || strings.EqualFold(item.Name, term) {
			return i
		}
	}
	return -1
}

// RemoveItem removes the first inventory entry with the given ID.
//
// Postcondition: Returns the removed item and true, or a zero Item and
// false when no entry matched.
func (p *Player) RemoveItem(id string) (Item, bool) {
	for i, item := range p.Inventory {
		if item.ID == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return item, true
		}
	}
	return Item{}, false
}

// AddItem appends an item to the inventory.
func (p *Player) AddItem(item Item) {
	p.Inventory = append(p.Inventory, item)
}

// HasSkill reports whether the player has learned the given skill.
func (p *Player) HasSkill(id string) bool {
	for _, s := range p.Skills {
		if s == id {
			return true
		}
	}
	return false
}

// LearnSkill appends a skill if not already present.
//
// Postcondition: Skills contains id exactly once.
func (p *Player) LearnSkill(id string) {
	if !p.HasSkill(id) {
		p.Skills = append(p.Skills, id)
	}
}

// Stat returns the named stat value.
//
// Postcondition: Returns (value, true) for a known stat name, (0, false)
// otherwise.
func (p *Player) Stat(name string) (int, bool) {
	switch name {
	case "strength":
		return p.Stats.Strength, true
	case "dexterity":
		return p.Stats.Dexterity, true
	case "intellect":
		return p.Stats.Intellect, true
	case "vitality":
		return p.Stats.Vitality, true
	case "luck":
		return p.Stats.Luck, true
	}
	return 0, false
}

// MarkVisited appends roomID to the visited list if absent.
//
// Postcondition: VisitedRooms contains roomID exactly once. Returns true
// when the room was newly added.
func (p *Player) MarkVisited(roomID string) bool {
	for _, id := range p.VisitedRooms {
		if id == roomID {
			return false
		}
	}
	p.VisitedRooms = append(p.VisitedRooms, roomID)
	return true
}

// Marshal serializes the player to JSON for opaque persistence.
func (p *Player) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal restores a player from a JSON snapshot produced by Marshal.
//
// Postcondition: Returns a player with non-nil maps and slices even if the
// snapshot predates some fields.
func Unmarshal(data []byte) (*Player, error) {
	var p Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Equipped == nil {
		p.Equipped = make(map[string]string)
	}
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	if p.Inventory == nil {
		p.Inventory = []Item{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.VisitedRooms == nil {
		p.VisitedRooms = []string{}
	}
	if p.StatusEffects == nil {
		p.StatusEffects = []string{}
	}
	return &p, nil
}
