package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rowanvale/lantern/internal/frontend/telnet"
	"github.com/rowanvale/lantern/internal/game/command"
	"github.com/rowanvale/lantern/internal/game/engine"
	"github.com/rowanvale/lantern/internal/game/session"
	"github.com/rowanvale/lantern/internal/storage/postgres"
)

// GameHandler runs the in-game command loop for an authenticated account.
// It bridges one Telnet connection to the shared engine: inbound lines
// become engine commands, and the session mailbox feeds broadcasts from
// other players back down the connection.
type GameHandler struct {
	engine   *engine.Engine
	sessions *session.Manager
	players  PlayerStore
	logger   *zap.Logger
}

// NewGameHandler creates a GameHandler over the shared engine and session
// manager.
//
// Precondition: eng, sessions, players, and logger must be non-nil.
func NewGameHandler(eng *engine.Engine, sessions *session.Manager, players PlayerStore, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		engine:   eng,
		sessions: sessions,
		players:  players,
		logger:   logger,
	}
}

// Run drives the game loop until the player quits, the connection drops,
// or the server shuts down. The player's snapshot is saved after every
// state-changing command and once more on exit.
//
// Postcondition: The session is removed from the manager and its mailbox
// closed before Run returns.
func (h *GameHandler) Run(ctx context.Context, conn *telnet.Conn, acct postgres.Account) error {
	p, err := h.players.Load(ctx, acct.ID)
	switch {
	case errors.Is(err, postgres.ErrPlayerNotFound):
		p = h.engine.NewPlayer(acct.Username)
		h.logger.Info("created fresh player",
			zap.String("username", acct.Username),
			zap.String("room", p.Location))
	case err != nil:
		h.logger.Error("loading player snapshot", zap.Error(err))
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please reconnect."))
		return err
	}

	uid := uuid.NewString()
	sess, err := h.sessions.Add(uid, acct.Username, p)
	if err != nil {
		return fmt.Errorf("registering session: %w", err)
	}
	defer func() {
		if err := h.sessions.Remove(uid); err != nil {
			h.logger.Warn("removing session", zap.Error(err))
		}
		h.save(acct.ID, sess)
	}()

	go h.drainMailbox(ctx, conn, sess)
	h.sessions.Broadcast(p.Location, uid, fmt.Sprintf("%s appears.", p.Name))

	// Orient the player before the first prompt.
	res := h.engine.ProcessCommand(sess, "look")
	_ = conn.WriteLine(res.Message)

	var fight *encounter
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		prompt := "> "
		if sess.InCombat {
			prompt = telnet.Colorize(telnet.BrightRed, "[combat] ") + "> "
		}
		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, prompt)); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if lower == "quit" || lower == "exit" {
			h.save(acct.ID, sess)
			h.sessions.Broadcast(sess.Player.Location, uid, fmt.Sprintf("%s fades away.", sess.Player.Name))
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Your progress is saved. Goodbye!"))
			return nil
		}

		if sess.InCombat && fight != nil {
			lines, done := fight.handle(lower, sess.Player)
			for _, l := range lines {
				_ = conn.WriteLine(l)
			}
			if done {
				sess.InCombat = false
				fight = nil
				h.save(acct.ID, sess)
			}
			continue
		}

		start := time.Now()
		res := h.engine.ProcessCommand(sess, line)
		h.logger.Debug("command processed",
			zap.String("uid", uid),
			zap.String("input", line),
			zap.Bool("success", res.Success),
			zap.Duration("elapsed", time.Since(start)))

		_ = conn.WriteLine(res.Message)
		if !res.Success {
			if hint := suggestLine(line); hint != "" {
				_ = conn.WriteLine(telnet.Colorize(telnet.Dim, hint))
			}
		}

		if res.CombatTriggered {
			fight = newEncounter(res.ModalData["enemy"], res.ModalData["enemy_name"])
			_ = conn.WriteLine(telnet.Colorf(telnet.BrightRed,
				"The %s attacks! (attack, cast <skill>, or flee)", fight.name))
		}
		if res.StateChanges || res.RoomChanged {
			h.save(acct.ID, sess)
		}
	}
}

// save persists the session's player snapshot, logging failures rather
// than surfacing them to the game loop.
func (h *GameHandler) save(accountID int64, sess *session.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.players.Save(ctx, accountID, sess.Player); err != nil {
		h.logger.Error("saving player snapshot",
			zap.String("username", sess.Username), zap.Error(err))
	}
}

// drainMailbox forwards broadcast lines from other sessions down the
// connection until the mailbox closes or the context ends.
func (h *GameHandler) drainMailbox(ctx context.Context, conn *telnet.Conn, sess *session.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-sess.Mailbox.Events():
			if !ok {
				return
			}
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, line))
		}
	}
}

// suggestLine offers verb completions when the first word of a failed
// command prefixes known verbs.
func suggestLine(input string) string {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return ""
	}
	matches := command.Suggest(fields[0])
	if len(matches) == 0 || (len(matches) == 1 && matches[0] == fields[0]) {
		return ""
	}
	return "Did you mean: " + strings.Join(matches, ", ") + "?"
}
