package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlRoomFile is the top-level YAML structure for room content files.
type yamlRoomFile struct {
	Rooms []yamlRoom `yaml:"rooms"`
}

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	ID           string                 `yaml:"id"`
	Name         string                 `yaml:"name"`
	Aliases      []string               `yaml:"aliases"`
	Zone         string                 `yaml:"zone"`
	Lit          bool                   `yaml:"lit"`
	Descriptions yamlDescriptions       `yaml:"descriptions"`
	Dynamic      []yamlDynamic          `yaml:"dynamic_descriptions"`
	Exits        map[string]yamlExit    `yaml:"exits"`
	Objects      []yamlObject           `yaml:"objects"`
	NPCs         []yamlNPC              `yaml:"npcs"`
	Hooks        yamlHooks              `yaml:"hooks"`
	Progression  yamlProgression        `yaml:"progression"`
}

type yamlDescriptions struct {
	Initial string `yaml:"initial"`
	Long    string `yaml:"long"`
	Short   string `yaml:"short"`
	Visited string `yaml:"visited"`
	Dark    string `yaml:"dark"`
}

type yamlDynamic struct {
	Flag string `yaml:"flag"`
	Text string `yaml:"text"`
}

type yamlExit struct {
	Target         string           `yaml:"target"`
	Hidden         bool             `yaml:"hidden"`
	OneWay         bool             `yaml:"one_way"`
	Requirement    *yamlRequirement `yaml:"requirement"`
	BlockedMessage string           `yaml:"blocked_message"`
	TravelMessage  string           `yaml:"travel_message"`
}

type yamlRequirement struct {
	Kind  string `yaml:"kind"`
	ID    string `yaml:"id"`
	Value int    `yaml:"value"`
}

type yamlObject struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Synonyms      []string          `yaml:"synonyms"`
	Description   string            `yaml:"description"`
	Placement     string            `yaml:"placement"`
	Visibility    string            `yaml:"visibility"`
	RequiresLight bool              `yaml:"requires_light"`
	Takeable      bool              `yaml:"takeable"`
	Slot          string            `yaml:"slot"`
	Usable        bool              `yaml:"usable"`
	Weight        float64           `yaml:"weight"`
	StateChanges  map[string]string `yaml:"state_changes"`
}

type yamlNPC struct {
	ID                string            `yaml:"id"`
	Name              string            `yaml:"name"`
	Description       string            `yaml:"description"`
	Hostile           bool              `yaml:"hostile"`
	SpawnConditions   []string          `yaml:"spawn_conditions"`
	DespawnConditions []string          `yaml:"despawn_conditions"`
	Dialogue          map[string]string `yaml:"dialogue"`
}

type yamlHooks struct {
	OnEnter string `yaml:"on_enter"`
	OnExit  string `yaml:"on_exit"`
	OnLook  string `yaml:"on_look"`
}

type yamlProgression struct {
	Chapter  int `yaml:"chapter"`
	Sequence int `yaml:"sequence"`
}

// LoadRoomsFromFile reads and validates a single room content YAML file.
//
// Precondition: path must point to a valid YAML room file.
// Postcondition: Returns validated rooms or a non-nil error.
func LoadRoomsFromFile(path string) ([]*Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading room file %s: %w", path, err)
	}
	rooms, err := LoadRoomsFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rooms, nil
}

// LoadRoomsFromBytes parses and validates rooms from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the room schema.
// Postcondition: Returns validated rooms or a non-nil error.
func LoadRoomsFromBytes(data []byte) ([]*Room, error) {
	var file yamlRoomFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing room YAML: %w", err)
	}

	rooms := make([]*Room, 0, len(file.Rooms))
	for _, yr := range file.Rooms {
		room := convertYAMLRoom(yr)
		if err := room.Validate(); err != nil {
			return nil, fmt.Errorf("validating room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// LoadRoomsFromDir loads all YAML files in a directory as room content.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated rooms or the first error encountered.
func LoadRoomsFromDir(dir string) ([]*Room, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading room directory %s: %w", dir, err)
	}

	var rooms []*Room
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		fileRooms, err := LoadRoomsFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, fileRooms...)
	}

	if len(rooms) == 0 {
		return nil, fmt.Errorf("no room files found in %s", dir)
	}
	return rooms, nil
}

// convertYAMLRoom converts the parsed YAML structures into domain types,
// applying placement and visibility defaults.
func convertYAMLRoom(yr yamlRoom) *Room {
	room := &Room{
		ID:      yr.ID,
		Name:    yr.Name,
		Aliases: yr.Aliases,
		Zone:    yr.Zone,
		Descriptions: Descriptions{
			Initial: yr.Descriptions.Initial,
			Long:    yr.Descriptions.Long,
			Short:   yr.Descriptions.Short,
			Visited: yr.Descriptions.Visited,
			Dark:    yr.Descriptions.Dark,
		},
		Lighting: Lighting{IsLit: yr.Lit},
		Exits:    make(map[string]*Exit, len(yr.Exits)),
		State:    map[string]bool{"visited": false},
		Hooks: Hooks{
			OnEnter: yr.Hooks.OnEnter,
			OnExit:  yr.Hooks.OnExit,
			OnLook:  yr.Hooks.OnLook,
		},
		Progression: Progression{
			Chapter:  yr.Progression.Chapter,
			Sequence: yr.Progression.Sequence,
		},
	}

	for _, yd := range yr.Dynamic {
		room.Dynamic = append(room.Dynamic, DynamicDescription{Flag: yd.Flag, Text: yd.Text})
	}

	for dir, ye := range yr.Exits {
		exit := &Exit{
			Target:         ye.Target,
			Hidden:         ye.Hidden,
			OneWay:         ye.OneWay,
			BlockedMessage: ye.BlockedMessage,
			TravelMessage:  ye.TravelMessage,
		}
		if ye.Requirement != nil {
			exit.Requirement = &Requirement{
				Kind:  ye.Requirement.Kind,
				ID:    ye.Requirement.ID,
				Value: ye.Requirement.Value,
			}
		}
		room.Exits[strings.ToLower(dir)] = exit
	}

	for _, yo := range yr.Objects {
		obj := &Object{
			ID:            yo.ID,
			Name:          yo.Name,
			Synonyms:      yo.Synonyms,
			Description:   yo.Description,
			Placement:     yo.Placement,
			Visibility:    yo.Visibility,
			RequiresLight: yo.RequiresLight,
			Takeable:      yo.Takeable,
			Slot:          yo.Slot,
			Usable:        yo.Usable,
			Weight:        yo.Weight,
			StateChanges:  yo.StateChanges,
		}
		if obj.Placement == "" {
			obj.Placement = PlacementRoom
		}
		if obj.Visibility == "" {
			obj.Visibility = VisibilityAlways
		}
		room.Objects = append(room.Objects, obj)
	}

	for _, yn := range yr.NPCs {
		room.NPCs = append(room.NPCs, &NPC{
			ID:                yn.ID,
			Name:              yn.Name,
			Description:       yn.Description,
			Hostile:           yn.Hostile,
			SpawnConditions:   yn.SpawnConditions,
			DespawnConditions: yn.DespawnConditions,
			Dialogue:          yn.Dialogue,
		})
	}

	return room
}
