package session

import (
	"fmt"
	"sync"

	"github.com/rowanvale/lantern/internal/game/player"
)

// Session is one connected player's live state: their Player plus the
// transient combat and delivery context.
type Session struct {
	// UID is the unique session identifier.
	UID string
	// Username is the account username (for logging).
	Username string
	// Player is the live mutable player state.
	Player *player.Player
	// InCombat marks the session as handed to the external combat mode.
	// While set, non-combat commands are rejected by the engine.
	InCombat bool
	// Mailbox carries events from other sessions to this one's transport.
	Mailbox *Mailbox
}

// Manager tracks all active sessions and room occupancy.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session        // uid -> session
	roomSets map[string]map[string]bool // roomID -> set of UIDs
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		roomSets: make(map[string]map[string]bool),
	}
}

// Add registers a new session for the given player.
//
// Precondition: uid must be non-empty; p must be non-nil with a location.
// Postcondition: Returns the created Session, or an error if the UID is
// already registered.
func (m *Manager) Add(uid, username string, p *player.Player) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[uid]; exists {
		return nil, fmt.Errorf("session %q already registered", uid)
	}

	sess := &Session{
		UID:      uid,
		Username: username,
		Player:   p,
		Mailbox:  NewMailbox(uid, 64),
	}
	m.sessions[uid] = sess
	m.addToRoom(uid, p.Location)
	return sess, nil
}

// Remove drops a session and cleans up room occupancy.
//
// Postcondition: The session's mailbox is closed. Returns an error if the
// UID is not registered.
func (m *Manager) Remove(uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[uid]
	if !exists {
		return fmt.Errorf("session %q not found", uid)
	}

	m.removeFromRoom(uid, sess.Player.Location)
	_ = sess.Mailbox.Close()
	delete(m.sessions, uid)
	return nil
}

// Move updates room occupancy for a session that changed location.
// The caller is responsible for having already updated Player.Location.
//
// Postcondition: Occupancy sets reflect the new room, or an error if the
// session is unknown.
func (m *Manager) Move(uid, oldRoomID, newRoomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[uid]; !exists {
		return fmt.Errorf("session %q not found", uid)
	}
	m.removeFromRoom(uid, oldRoomID)
	m.addToRoom(uid, newRoomID)
	return nil
}

// Get returns the session for the given UID.
//
// Postcondition: Returns (session, true) if found, or (nil, false).
func (m *Manager) Get(uid string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[uid]
	return sess, ok
}

// InRoom returns the player names of all sessions in the given room.
//
// Postcondition: Returns a slice of names (may be empty).
func (m *Manager) InRoom(roomID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uids, ok := m.roomSets[roomID]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(uids))
	for uid := range uids {
		if sess, ok := m.sessions[uid]; ok {
			names = append(names, sess.Player.Name)
		}
	}
	return names
}

// Broadcast pushes an event line to every session in roomID except the one
// identified by exceptUID. Full mailboxes drop the line.
func (m *Manager) Broadcast(roomID, exceptUID, line string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for uid := range m.roomSets[roomID] {
		if uid == exceptUID {
			continue
		}
		if sess, ok := m.sessions[uid]; ok {
			_ = sess.Mailbox.Push(line)
		}
	}
}

// BroadcastAll pushes an event line to every session except exceptUID.
func (m *Manager) BroadcastAll(exceptUID, line string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for uid, sess := range m.sessions {
		if uid == exceptUID {
			continue
		}
		_ = sess.Mailbox.Push(line)
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) addToRoom(uid, roomID string) {
	if m.roomSets[roomID] == nil {
		m.roomSets[roomID] = make(map[string]bool)
	}
	m.roomSets[roomID][uid] = true
}

func (m *Manager) removeFromRoom(uid, roomID string) {
	if rs, ok := m.roomSets[roomID]; ok {
		delete(rs, uid)
		if len(rs) == 0 {
			delete(m.roomSets, roomID)
		}
	}
}
