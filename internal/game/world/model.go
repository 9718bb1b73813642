// Package world provides the game world model: rooms, exits, objects,
// NPCs, and the shared store with its global flag scope.
package world

import (
	"fmt"
	"strings"
)

// Requirement kinds for gated exits.
const (
	RequireItem  = "item"
	RequireState = "state"
	RequireSkill = "skill"
	RequireStat  = "stat"
)

// Object placement values.
const (
	PlacementRoom      = "room"
	PlacementContainer = "container"
	PlacementHidden    = "hidden"
)

// Object visibility modes.
const (
	VisibilityAlways      = "always"
	VisibilityConditional = "conditional"
	VisibilityHidden      = "hidden"
)

// Requirement gates an exit on a single condition.
type Requirement struct {
	// Kind is one of item, state, skill, stat.
	Kind string
	// ID names the item, world-state flag, skill, or stat checked.
	ID string
	// Value is the minimum stat value; only meaningful when Kind is stat.
	Value int
}

// Exit is a directed passage from one room to another.
type Exit struct {
	// Target is the destination room ID.
	Target string
	// Hidden exits are omitted from the room's exit listing.
	Hidden bool
	// OneWay marks exits with no matching return passage.
	OneWay bool
	// Requirement, when non-nil, must pass before the exit can be used.
	Requirement *Requirement
	// BlockedMessage overrides the default refusal text for a failed requirement.
	BlockedMessage string
	// TravelMessage is shown before the destination description on success.
	TravelMessage string
}

// Object is a thing placed in a room. IDs are globally unique across all
// rooms; equipment identity resolution depends on that.
type Object struct {
	ID          string
	Name        string
	Synonyms    []string
	Description string
	// Placement is room, container, or hidden.
	Placement string
	// Visibility is always, conditional, or hidden.
	Visibility string
	// RequiresLight hides a conditional object unless the player can see.
	RequiresLight bool
	Takeable      bool
	// Taken is mutable; once true the object never reappears in listings.
	Taken bool
	// Slot is the equipment slot this object occupies when equipped; empty
	// means not equippable.
	Slot string
	// Usable marks objects that respond to the use command once carried.
	Usable bool
	// Weight is carried into the inventory entry on take.
	Weight float64
	// StateChanges holds one-time effect triggers keyed by effect name,
	// e.g. ability_learned -> skill id.
	StateChanges map[string]string
}

// Matches reports whether term refers to this object by id, name, or synonym.
//
// Precondition: term should be lowercased and trimmed.
func (o *Object) Matches(term string) bool {
	if term == "" {
		return false
	}
	if strings.ToLower(o.ID) == term || strings.ToLower(o.Name) == term {
		return true
	}
	for _, syn := range o.Synonyms {
		if strings.ToLower(syn) == term {
			return true
		}
	}
	return false
}

// NPC is a non-player character attached to a room. Presence is computed
// from spawn conditions on every evaluation, never stored.
type NPC struct {
	ID          string
	Name        string
	Description string
	Hostile     bool
	// SpawnConditions is the ordered list of predicate names that must all
	// hold for the NPC to be present.
	SpawnConditions []string
	// DespawnConditions removes the NPC when any predicate holds.
	DespawnConditions []string
	// Dialogue maps topic to response line.
	Dialogue map[string]string
}

// Descriptions holds the fixed description variants of a room.
type Descriptions struct {
	// Initial is shown on the first visit.
	Initial string
	// Long is the full description for verbose looks and lit dark rooms.
	Long string
	// Short is the fallback terse description.
	Short string
	// Visited is shown on repeat plain looks.
	Visited string
	// Dark is the only text shown when the player cannot see.
	Dark string
}

// DynamicDescription overrides every other variant while its backing
// room-state flag is true. Order of declaration decides precedence.
type DynamicDescription struct {
	Flag string
	Text string
}

// Lighting describes a room's native light.
type Lighting struct {
	// IsLit is true for rooms with their own light source.
	IsLit bool
}

// Hooks are declarative lifecycle messages interpreted by the engine.
type Hooks struct {
	OnEnter string
	OnExit  string
	OnLook  string
}

// Progression carries authoring metadata ordering rooms within the story.
type Progression struct {
	Chapter  int
	Sequence int
}

// Room is a node in the world graph. Rooms load once at boot and mutate in
// place afterwards; only an explicit restart resets their flags.
type Room struct {
	ID           string
	Name         string
	Aliases      []string
	Zone         string
	Descriptions Descriptions
	Dynamic      []DynamicDescription
	Lighting     Lighting
	// Exits is keyed by direction.
	Exits   map[string]*Exit
	Objects []*Object
	NPCs    []*NPC
	// State is the room-local flag scope. Always contains "visited".
	State       map[string]bool
	Hooks       Hooks
	Progression Progression
}

// FindObject returns the first untaken object matching term.
//
// Precondition: term should be lowercased and trimmed.
// Postcondition: Returns (object, true) if found, or (nil, false).
func (r *Room) FindObject(term string) (*Object, bool) {
	for _, obj := range r.Objects {
		if !obj.Taken && obj.Matches(term) {
			return obj, true
		}
	}
	return nil, false
}

// Validate checks room invariants.
//
// Postcondition: Returns nil if valid, or an error naming the first violation.
func (r *Room) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("room ID must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("room %q: name must not be empty", r.ID)
	}
	if r.Descriptions.Long == "" && r.Descriptions.Initial == "" {
		return fmt.Errorf("room %q: must have an initial or long description", r.ID)
	}
	for dir, exit := range r.Exits {
		if exit.Target == "" {
			return fmt.Errorf("room %q: exit %q has empty target", r.ID, dir)
		}
		if exit.Requirement != nil {
			switch exit.Requirement.Kind {
			case RequireItem, RequireState, RequireSkill, RequireStat:
			default:
				return fmt.Errorf("room %q: exit %q has unknown requirement kind %q",
					r.ID, dir, exit.Requirement.Kind)
			}
			if exit.Requirement.ID == "" {
				return fmt.Errorf("room %q: exit %q requirement needs an id", r.ID, dir)
			}
		}
	}
	seen := make(map[string]bool, len(r.Objects))
	for _, obj := range r.Objects {
		if obj.ID == "" {
			return fmt.Errorf("room %q: object with empty ID", r.ID)
		}
		if seen[obj.ID] {
			return fmt.Errorf("room %q: duplicate object ID %q", r.ID, obj.ID)
		}
		seen[obj.ID] = true
	}
	return nil
}
