package light

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/world"
)

func TestHasLight(t *testing.T) {
	litRoom := &world.Room{ID: "R1", Lighting: world.Lighting{IsLit: true}}
	darkRoom := &world.Room{ID: "R2"}

	tests := []struct {
		name     string
		room     *world.Room
		equipped string
		on       bool
		want     bool
	}{
		{"lit room, no light source", litRoom, "", false, true},
		{"dark room, no light source", darkRoom, "", false, false},
		{"dark room, light source off", darkRoom, "brass_lantern", false, false},
		{"dark room, light source on", darkRoom, "brass_lantern", true, true},
		{"lit room, light source on", litRoom, "brass_lantern", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := player.New("Wren", "R1", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
			if tt.equipped != "" {
				p.Equipped[player.SlotLightSource] = tt.equipped
				p.Flags[tt.equipped+"_on"] = tt.on
			}
			assert.Equal(t, tt.want, HasLight(tt.room, p))
		})
	}
}

func TestHasLight_OtherSlotDoesNotCount(t *testing.T) {
	darkRoom := &world.Room{ID: "R2"}
	p := player.New("Wren", "R1", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	p.Equipped[player.SlotWeapon] = "glow_sword"
	p.Flags["glow_sword_on"] = true
	assert.False(t, HasLight(darkRoom, p))
}
