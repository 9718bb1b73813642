package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/world"
)

func fixtureStore() *world.Store {
	s := world.NewStore()
	s.LoadRooms([]*world.Room{
		{
			ID:           "ROOM_001",
			Name:         "Cellar",
			Descriptions: world.Descriptions{Long: "A cellar."},
			Objects: []*world.Object{
				{
					ID:          "brass_lantern",
					Name:        "brass lantern",
					Synonyms:    []string{"lantern", "lamp"},
					Description: "A dented brass lantern.",
					Takeable:    true,
					Slot:        player.SlotLightSource,
					Weight:      2.5,
				},
				{
					ID:       "iron_sword",
					Name:     "iron sword",
					Takeable: true,
					Slot:     player.SlotWeapon,
				},
			},
		},
	})
	return s
}

func carriedLantern() player.Item {
	return player.Item{
		ID:          "brass_lantern",
		Name:        "brass lantern",
		Description: "A dented brass lantern.",
		Quantity:    1,
		Equippable:  true,
		Slot:        player.SlotLightSource,
		Weight:      2.5,
	}
}

func TestEquip_Success(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	p.AddItem(carriedLantern())

	require.NoError(t, m.Equip(p, "brass_lantern"))
	assert.Equal(t, "brass_lantern", p.Equipped[player.SlotLightSource])
	assert.False(t, p.HasItem("brass_lantern"), "equipped items leave the inventory")
}

func TestEquip_NotCarried(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	assert.ErrorIs(t, m.Equip(p, "brass_lantern"), ErrNotCarried)
}

func TestEquip_NotEquippable(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	p.AddItem(player.Item{ID: "pebble", Name: "pebble", Quantity: 1})
	assert.ErrorIs(t, m.Equip(p, "pebble"), ErrNotEquippable)
	assert.True(t, p.HasItem("pebble"))
}

func TestEquip_SlotOccupiedNoSwap(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	p.AddItem(carriedLantern())
	p.AddItem(player.Item{
		ID: "candle", Name: "candle", Quantity: 1,
		Equippable: true, Slot: player.SlotLightSource,
	})

	require.NoError(t, m.Equip(p, "brass_lantern"))
	err := m.Equip(p, "candle")
	assert.ErrorIs(t, err, ErrSlotOccupied)
	// No side effects: the candle stays carried, the lantern stays equipped.
	assert.True(t, p.HasItem("candle"))
	assert.Equal(t, "brass_lantern", p.Equipped[player.SlotLightSource])
}

func TestUnequip_ReconstructsFromDefinition(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	// Equipped state tracks only the ID, as after a restore.
	p.Equipped[player.SlotLightSource] = "brass_lantern"

	require.NoError(t, m.Unequip(p, "brass_lantern"))
	assert.Empty(t, p.Equipped[player.SlotLightSource])
	require.Len(t, p.Inventory, 1)

	got := p.Inventory[0]
	assert.Equal(t, "brass lantern", got.Name)
	assert.Equal(t, "A dented brass lantern.", got.Description)
	assert.Equal(t, player.SlotLightSource, got.Slot)
	assert.InDelta(t, 2.5, got.Weight, 0.001)
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, got.Equippable)
}

func TestUnequip_NotEquipped(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	assert.ErrorIs(t, m.Unequip(p, "brass_lantern"), ErrNotEquipped)
}

func TestUnequip_NoDefinition(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	p.Equipped[player.SlotWeapon] = "phantom_blade"

	assert.ErrorIs(t, m.Unequip(p, "phantom_blade"), ErrNoDefinition)
	// Rolled back: the slot still holds the ID.
	assert.Equal(t, "phantom_blade", p.Equipped[player.SlotWeapon])
}

func TestEquippedMatching(t *testing.T) {
	m := NewManager(fixtureStore())
	p := player.New("Wren", "ROOM_001", player.Defaults{BaseHP: 10, BaseMP: 5, BaseStat: 5})
	p.Equipped[player.SlotLightSource] = "brass_lantern"

	id, slot, ok := m.EquippedMatching(p, "lamp")
	require.True(t, ok)
	assert.Equal(t, "brass_lantern", id)
	assert.Equal(t, player.SlotLightSource, slot)

	id, _, ok = m.EquippedMatching(p, "brass_lantern")
	require.True(t, ok)
	assert.Equal(t, "brass_lantern", id)

	_, _, ok = m.EquippedMatching(p, "sword")
	assert.False(t, ok)
}
