// Package engine is the command router: it turns parsed commands into world
// and player mutations and produces the result envelope the transport
// relays.
package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rowanvale/lantern/internal/config"
	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/equipment"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/session"
	"github.com/rowanvale/lantern/internal/game/world"
)

// internalErrorMessage is returned for consistency failures (dangling room
// references, missing definitions) after the attempted mutation is rolled
// back. The underlying cause goes to the log, never to the player.
const internalErrorMessage = "Something shifts wrongly in the world, and you stay where you are."

// CommandResult is the envelope every command produces. The transport
// relays Message verbatim, broadcasts a state snapshot when StateChanges or
// RoomChanged is set, and hands control to the external combat mode when
// CombatTriggered is set.
type CommandResult struct {
	Success bool
	Message string
	// StateChanges reports that player or world state mutated.
	StateChanges bool
	// RoomChanged reports that the player's location changed.
	RoomChanged bool
	// CombatTriggered reports that a hostile encounter started.
	CombatTriggered bool
	// ModalData carries extra context for modal transport flows, such as
	// the combat target.
	ModalData map[string]string
}

func failure(message string) CommandResult {
	return CommandResult{Message: message}
}

// Engine owns the dispatch table and all command handlers. One Engine
// serves every session; commands run to completion one at a time under a
// single lock, preserving shared-world run-to-completion semantics.
type Engine struct {
	mu       sync.Mutex
	store    *world.Store
	sessions *session.Manager
	equip    *equipment.Manager
	cfg      config.GameConfig
	logger   *zap.Logger
}

// New creates an Engine over the shared store and session manager.
//
// Precondition: store, sessions, and logger must be non-nil.
func New(store *world.Store, sessions *session.Manager, cfg config.GameConfig, logger *zap.Logger) *Engine {
	return &Engine{
		store:    store,
		sessions: sessions,
		equip:    equipment.NewManager(store),
		cfg:      cfg,
		logger:   logger,
	}
}

// defaults returns the player-creation baselines from the game config.
func (e *Engine) defaults() player.Defaults {
	return player.Defaults{
		BaseHP:   e.cfg.BaseHP,
		BaseMP:   e.cfg.BaseMP,
		BaseStat: e.cfg.BaseStat,
	}
}

// NewPlayer constructs a fresh player at the configured starting room.
// This is the only player-construction entry point.
func (e *Engine) NewPlayer(name string) *player.Player {
	return player.New(name, e.cfg.StartingRoom, e.defaults())
}

// CurrentRoom returns the room the session's player occupies.
//
// Postcondition: Returns (room, true), or (nil, false) when the location
// is dangling.
func (e *Engine) CurrentRoom(sess *session.Session) (*world.Room, bool) {
	return e.store.Room(sess.Player.Location)
}

// combatVerbs may still be issued while the session is in combat.
var combatVerbs = map[string]bool{
	command.VerbAttack:  true,
	command.VerbCast:    true,
	command.VerbLook:    true,
	command.VerbExamine: true,
	command.VerbHelp:    true,
}

// ProcessCommand parses and executes one command for a session. It is the
// sole entry point transports call per inbound line, and always returns
// exactly one result.
//
// Precondition: sess must be non-nil with a non-nil Player.
// Postcondition: On any failure the player's location and inventory are
// consistent with the store; handlers never panic the process.
func (e *Engine) ProcessCommand(sess *session.Session, raw string) CommandResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := command.Parse(raw)
	if !cmd.Valid {
		return failure(cmd.Error)
	}

	if sess.InCombat && !combatVerbs[cmd.Verb] {
		return failure("You can't do that while fighting for your life!")
	}

	switch cmd.Verb {
	case command.VerbLook:
		return e.handleLook(sess, cmd)
	case command.VerbExamine:
		return e.handleExamine(sess, cmd)
	case command.VerbGo:
		return e.handleGo(sess, cmd)
	case command.VerbTake:
		return e.handleTake(sess, cmd)
	case command.VerbDrop:
		return e.handleDrop(sess, cmd)
	case command.VerbInventory:
		return e.handleInventory(sess)
	case command.VerbUse:
		return e.handleUse(sess, cmd)
	case command.VerbTurn:
		return e.handleTurn(sess, cmd)
	case command.VerbLight:
		return e.handleLight(sess, cmd)
	case command.VerbExtinguish:
		return e.handleExtinguish(sess, cmd)
	case command.VerbOpen:
		return e.handleOpen(sess, cmd, true)
	case command.VerbClose:
		return e.handleOpen(sess, cmd, false)
	case command.VerbAttack:
		return e.handleAttack(sess, cmd)
	case command.VerbCast:
		return e.handleCast(sess, cmd)
	case command.VerbRest:
		return e.handleRest(sess)
	case command.VerbHelp:
		return e.handleHelp()
	case command.VerbRestart:
		return e.handleRestart(sess)
	case command.VerbEquip:
		return e.handleEquip(sess, cmd)
	case command.VerbUnequip:
		return e.handleUnequip(sess, cmd)
	default:
		// The parser's verb table should cover every case above; this
		// guards against a verb added there but not routed yet.
		return failure(fmt.Sprintf("I don't know how to %s.", cmd.Verb))
	}
}
