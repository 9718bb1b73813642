package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/lantern/internal/game/player"
)

// scriptedSource feeds a fixed sequence of Intn results, repeating the
// last value when the script runs out.
type scriptedSource struct {
	values []int
	idx    int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[min(s.idx, len(s.values)-1)]
	s.idx++
	if v >= n {
		v = n - 1
	}
	return v
}

func combatant() *player.Player {
	p := player.New("Fighter", "ROOM_001", player.Defaults{BaseHP: 30, BaseMP: 10, BaseStat: 5})
	p.LearnSkill("read_runes")
	return p
}

func TestEncounterAttackUntilVictory(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	// High attack and damage rolls: every swing hits for 6+1.
	e.src = &scriptedSource{values: []int{19, 5, 0}}
	p := combatant()

	lines, done := e.handle("attack", p)
	require.False(t, done)
	assert.Contains(t, strings.Join(lines, "\n"), "strike the ghoul")

	e.src = &scriptedSource{values: []int{19, 5, 0}}
	lines, done = e.handle("attack", p)
	assert.True(t, done, "two max-damage hits must fell an 8 HP enemy")
	assert.Contains(t, strings.Join(lines, "\n"), "collapses")
}

func TestEncounterMissStillDrawsCounterattack(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	// Attack roll of 1+2 misses; enemy claws for 3+1... 1d4 rolls value 2 -> 3.
	e.src = &scriptedSource{values: []int{1, 2}}
	p := combatant()
	before := p.HP

	lines, done := e.handle("attack", p)
	assert.False(t, done)
	out := strings.Join(lines, "\n")
	assert.Contains(t, out, "miss")
	assert.Less(t, p.HP, before)
}

func TestEncounterCastRequiresSkillAndMP(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	p := combatant()

	lines, done := e.handle("cast fireball", p)
	assert.False(t, done)
	assert.Contains(t, lines[0], "don't know")

	p.MP = 1
	lines, done = e.handle("cast read_runes", p)
	assert.False(t, done)
	assert.Contains(t, lines[0], "too drained")
}

func TestEncounterDefeatLeavesPlayerAlive(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	p := combatant()
	p.HP = 2
	// Miss, then a max enemy roll drops the player to zero.
	e.src = &scriptedSource{values: []int{0, 3}}

	lines, done := e.handle("attack", p)
	assert.True(t, done)
	assert.Equal(t, 1, p.HP, "defeat must leave the player at one hit point")
	assert.Contains(t, strings.Join(lines, "\n"), "goes white")
}

func TestEncounterFlee(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	p := combatant()

	e.src = &scriptedSource{values: []int{15}}
	lines, done := e.handle("flee", p)
	assert.True(t, done)
	assert.Contains(t, lines[0], "scramble away")

	e = newEncounter("cellar_ghoul", "ghoul")
	e.src = &scriptedSource{values: []int{2, 1}}
	lines, done = e.handle("flee", p)
	assert.False(t, done)
	assert.Contains(t, lines[0], "cuts off your escape")
}

func TestEncounterBlankInput(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	p := combatant()
	before := p.HP

	lines, done := e.handle("   ", p)
	assert.False(t, done)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "won't wait")
	assert.Equal(t, before, p.HP, "a blank line must not cost the player a turn")
}

func TestEncounterUnknownInput(t *testing.T) {
	e := newEncounter("cellar_ghoul", "ghoul")
	p := combatant()
	lines, done := e.handle("inventory", p)
	assert.False(t, done)
	assert.Contains(t, lines[0], "fighting for your life")
}

func TestSuggestLine(t *testing.T) {
	assert.Contains(t, suggestLine("tak lantern"), "take")
	assert.Empty(t, suggestLine(""))
	assert.Empty(t, suggestLine("zzz"))
}
