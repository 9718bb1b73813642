package handlers

import (
	"fmt"
	"strings"

	"github.com/rowanvale/lantern/internal/game/dice"
	"github.com/rowanvale/lantern/internal/game/player"
)

// Encounter tuning. Hostile NPCs share one stat line; the variety comes
// from the dice.
const (
	enemyHP       = 8
	hitThreshold  = 10
	fleeThreshold = 8
	castMPCost    = 3
)

var (
	attackRoll = dice.MustParse("1d20+2")
	damageRoll = dice.MustParse("1d6+1")
	enemyRoll  = dice.MustParse("1d4")
	castRoll   = dice.MustParse("2d6")
	fleeRoll   = dice.MustParse("1d20")
)

// encounter is the modal combat state for one session. The engine opens
// encounters and refuses world commands while one is active; the transport
// resolves them here and clears the session's combat flag when done.
type encounter struct {
	enemyID string
	name    string
	hp      int
	src     dice.Source
}

func newEncounter(enemyID, name string) *encounter {
	if name == "" {
		name = "creature"
	}
	return &encounter{
		enemyID: enemyID,
		name:    name,
		hp:      enemyHP,
		src:     dice.NewCryptoSource(),
	}
}

// handle resolves one combat input. It returns the lines to show the
// player and whether the encounter ended.
func (e *encounter) handle(input string, p *player.Player) (lines []string, done bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return []string{"The fight won't wait. (attack, cast <skill>, or flee)"}, false
	}
	verb := fields[0]

	switch verb {
	case "attack", "hit", "strike", "kill", "fight":
		return e.resolveAttack(p)
	case "cast":
		if len(fields) < 2 {
			return []string{"Cast what?"}, false
		}
		return e.resolveCast(p, strings.Join(fields[1:], "_"))
	case "flee", "run", "escape":
		return e.resolveFlee(p)
	case "look", "l":
		return []string{fmt.Sprintf("The %s circles you, looking for an opening.", e.name)}, false
	default:
		return []string{"You can't do that while fighting for your life! (attack, cast <skill>, or flee)"}, false
	}
}

func (e *encounter) resolveAttack(p *player.Player) ([]string, bool) {
	var lines []string

	atk := dice.Roll(attackRoll, e.src)
	if atk.Total() >= hitThreshold {
		dmg := dice.Roll(damageRoll, e.src)
		e.hp -= dmg.Total()
		lines = append(lines, fmt.Sprintf("You strike the %s for %d damage!", e.name, dmg.Total()))
	} else {
		lines = append(lines, fmt.Sprintf("You swing at the %s and miss.", e.name))
	}

	if e.hp <= 0 {
		lines = append(lines, fmt.Sprintf("The %s collapses. The fight is over.", e.name))
		return lines, true
	}

	return e.enemyTurn(p, lines)
}

func (e *encounter) resolveCast(p *player.Player, skill string) ([]string, bool) {
	if !p.HasSkill(skill) {
		return []string{fmt.Sprintf("You don't know how to cast %s.", strings.ReplaceAll(skill, "_", " "))}, false
	}
	if p.MP < castMPCost {
		return []string{"You're too drained to cast anything."}, false
	}
	p.MP -= castMPCost

	dmg := dice.Roll(castRoll, e.src)
	e.hp -= dmg.Total()
	lines := []string{fmt.Sprintf("Your %s sears the %s for %d damage!",
		strings.ReplaceAll(skill, "_", " "), e.name, dmg.Total())}

	if e.hp <= 0 {
		lines = append(lines, fmt.Sprintf("The %s collapses. The fight is over.", e.name))
		return lines, true
	}
	return e.enemyTurn(p, lines)
}

func (e *encounter) resolveFlee(p *player.Player) ([]string, bool) {
	roll := dice.Roll(fleeRoll, e.src)
	if roll.Total() >= fleeThreshold {
		return []string{fmt.Sprintf("You scramble away from the %s!", e.name)}, true
	}

	lines := []string{fmt.Sprintf("The %s cuts off your escape!", e.name)}
	return e.enemyTurn(p, lines)
}

// enemyTurn applies the enemy's counterattack. A player brought to zero is
// left at one hit point and the encounter breaks off rather than killing
// the character.
func (e *encounter) enemyTurn(p *player.Player, lines []string) ([]string, bool) {
	dmg := dice.Roll(enemyRoll, e.src)
	p.HP -= dmg.Total()
	lines = append(lines, fmt.Sprintf("The %s claws you for %d damage. (%d/%d HP)",
		e.name, dmg.Total(), max(p.HP, 0), p.MaxHP))

	if p.HP <= 0 {
		p.HP = 1
		lines = append(lines, "Everything goes white. You come to, barely breathing, as the fight ends.")
		return lines, true
	}
	return lines, false
}
