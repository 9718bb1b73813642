package world

import (
	"fmt"
	"sync"
)

// Store is the single source of truth for the shared world: all loaded
// rooms, the flat object-definition index, and the global world-state flag
// scope. All sessions share one Store; mutations are visible to everyone.
// All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	// defs indexes every loaded object by its globally unique ID so
	// equipment identity resolves without scanning rooms per call.
	defs map[string]*Object
	// flags is the global world-state scope, distinct from room-local
	// state and per-player flags.
	flags map[string]bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
		defs:  make(map[string]*Object),
		flags: make(map[string]bool),
	}
}

// LoadRooms bulk-loads rooms into the store. Later entries with the same ID
// replace earlier ones, including rooms from previous calls.
//
// Postcondition: every loaded room has a non-nil State map containing
// "visited", non-nil Exits, and its objects indexed in the definition table.
func (s *Store) LoadRooms(rooms []*Room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range rooms {
		if room.State == nil {
			room.State = make(map[string]bool)
		}
		if _, ok := room.State["visited"]; !ok {
			room.State["visited"] = false
		}
		if room.Exits == nil {
			room.Exits = make(map[string]*Exit)
		}
		if prev, ok := s.rooms[room.ID]; ok {
			for _, obj := range prev.Objects {
				delete(s.defs, obj.ID)
			}
		}
		s.rooms[room.ID] = room
		for _, obj := range room.Objects {
			s.defs[obj.ID] = obj
		}
	}
}

// Room returns the room with the given ID.
//
// Postcondition: Returns (room, true) if found, or (nil, false).
func (s *Store) Room(id string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Definition returns the static object definition for a globally unique
// object ID, regardless of which room declared it.
//
// Postcondition: Returns (object, true) if found, or (nil, false).
func (s *Store) Definition(objectID string) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.defs[objectID]
	return o, ok
}

// Flag returns the global world-state flag, defaulting missing keys to false.
func (s *Store) Flag(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[name]
}

// SetFlag sets a global world-state flag.
func (s *Store) SetFlag(name string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[name] = value
}

// ResetAll returns every room to its freshly-loaded condition: state flags
// wiped, object Taken flags cleared, and world flags dropped. This is the
// world half of a restart: it affects all sessions sharing the store, not
// just the one that issued the command.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range s.rooms {
		room.State = map[string]bool{"visited": false}
		for _, obj := range room.Objects {
			obj.Taken = false
		}
	}
	s.flags = make(map[string]bool)
}

// RoomCount returns the number of loaded rooms.
func (s *Store) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// ValidateExits checks that every exit target resolves to a loaded room.
// Call after loading to catch dangling references at boot instead of at
// walk time.
//
// Postcondition: Returns nil if all exits resolve, or an error naming the
// first dangling target.
func (s *Store) ValidateExits() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, room := range s.rooms {
		for dir, exit := range room.Exits {
			if _, ok := s.rooms[exit.Target]; !ok {
				return fmt.Errorf("room %q: exit %q targets unknown room %q",
					room.ID, dir, exit.Target)
			}
		}
	}
	return nil
}
