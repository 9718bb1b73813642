package handlers

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rowanvale/lantern/internal/config"
	"github.com/rowanvale/lantern/internal/frontend/telnet"
	"github.com/rowanvale/lantern/internal/game/engine"
	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/game/session"
	"github.com/rowanvale/lantern/internal/game/world"
	"github.com/rowanvale/lantern/internal/storage/postgres"
)

// mockAccountStore implements AccountStore for testing.
type mockAccountStore struct {
	accounts  map[string]postgres.Account
	passwords map[string]string
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{
		accounts:  make(map[string]postgres.Account),
		passwords: make(map[string]string),
	}
}

func (m *mockAccountStore) Create(_ context.Context, username, password string) (postgres.Account, error) {
	if _, exists := m.accounts[username]; exists {
		return postgres.Account{}, postgres.ErrAccountExists
	}
	acct := postgres.Account{
		ID:        int64(len(m.accounts) + 1),
		Username:  username,
		CreatedAt: time.Now(),
	}
	m.accounts[username] = acct
	m.passwords[username] = password
	return acct, nil
}

func (m *mockAccountStore) Authenticate(_ context.Context, username, password string) (postgres.Account, error) {
	acct, exists := m.accounts[username]
	if !exists {
		return postgres.Account{}, postgres.ErrAccountNotFound
	}
	if m.passwords[username] != password {
		return postgres.Account{}, postgres.ErrInvalidCredentials
	}
	return acct, nil
}

// mockPlayerStore implements PlayerStore in memory.
type mockPlayerStore struct {
	snapshots map[int64][]byte
}

func newMockPlayerStore() *mockPlayerStore {
	return &mockPlayerStore{snapshots: make(map[int64][]byte)}
}

func (m *mockPlayerStore) Save(_ context.Context, accountID int64, p *player.Player) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	m.snapshots[accountID] = data
	return nil
}

func (m *mockPlayerStore) Load(_ context.Context, accountID int64) (*player.Player, error) {
	data, ok := m.snapshots[accountID]
	if !ok {
		return nil, postgres.ErrPlayerNotFound
	}
	return player.Unmarshal(data)
}

func testWorld() *world.Store {
	store := world.NewStore()
	store.LoadRooms([]*world.Room{
		{
			ID:   "ROOM_001",
			Name: "Village Green",
			Descriptions: world.Descriptions{
				Initial: "You stand on a quiet green.",
				Long:    "The village green.",
			},
			Lighting: world.Lighting{IsLit: true},
			Exits:    map[string]*world.Exit{},
			State:    map[string]bool{"visited": false},
		},
	})
	return store
}

func newHandlers(t *testing.T, accounts AccountStore, players PlayerStore) *AuthHandler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	sessions := session.NewManager()
	cfg := config.GameConfig{StartingRoom: "ROOM_001", BaseHP: 30, BaseMP: 10, BaseStat: 5,
		RestHPRecovery: 10, RestMPRecovery: 5}
	eng := engine.New(testWorld(), sessions, cfg, logger)
	game := NewGameHandler(eng, sessions, players, logger)
	return NewAuthHandler(accounts, game, logger)
}

// testServer starts a Telnet acceptor with the given handler on a random port
// and returns the listening address. The acceptor is stopped on test cleanup.
func testServer(t *testing.T, handler *AuthHandler) string {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cfg := config.TelnetConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	acc := telnet.NewAcceptor(cfg, handler, logger)
	go func() { _ = acc.ListenAndServe() }()

	deadline := time.After(2 * time.Second)
	for {
		if acc.IsRunning() && acc.Addr() != "" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("acceptor did not start in time")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Cleanup(func() { acc.Stop() })
	return acc.Addr()
}

// testClient is a raw TCP client with a persistent read buffer; readUntil
// discards only the data up to and including the matched substring.
type testClient struct {
	conn   net.Conn
	t      *testing.T
	buffer string
}

func newTestClient(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &testClient{conn: conn, t: t}
}

func (tc *testClient) readUntil(substr string, timeout time.Duration) string {
	tc.t.Helper()

	if idx := strings.Index(tc.buffer, substr); idx >= 0 {
		end := idx + len(substr)
		result := tc.buffer[:end]
		tc.buffer = tc.buffer[end:]
		return result
	}

	_ = tc.conn.SetReadDeadline(time.Now().Add(timeout))
	tmp := make([]byte, 4096)
	for {
		n, err := tc.conn.Read(tmp)
		if n > 0 {
			tc.buffer += string(tmp[:n])
			if idx := strings.Index(tc.buffer, substr); idx >= 0 {
				end := idx + len(substr)
				result := tc.buffer[:end]
				tc.buffer = tc.buffer[end:]
				return result
			}
		}
		if err != nil {
			tc.t.Fatalf("reading until %q: got %q, error: %v", substr, tc.buffer, err)
		}
	}
}

func (tc *testClient) send(line string) {
	tc.t.Helper()
	_ = tc.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_, err := tc.conn.Write([]byte(line + "\r\n"))
	require.NoError(tc.t, err)
}

// waitForPrompt reads through the welcome banner and initial telnet
// negotiations until the last banner line is visible.
func (tc *testClient) waitForPrompt() string {
	tc.t.Helper()
	return tc.readUntil("to disconnect.", 3*time.Second)
}

func TestWelcomeBannerContainsKeyElements(t *testing.T) {
	stripped := telnet.StripANSI(welcomeBanner)
	assert.Contains(t, stripped, "shared world")
	assert.Contains(t, stripped, "login")
	assert.Contains(t, stripped, "register")
	assert.Contains(t, stripped, "quit")
}

func TestHandleSession_Quit(t *testing.T) {
	handler := newHandlers(t, newMockAccountStore(), newMockPlayerStore())
	addr := testServer(t, handler)
	c := newTestClient(t, addr)

	c.waitForPrompt()
	c.send("quit")
	c.readUntil("Goodbye!", 2*time.Second)
}

func TestHandleSession_Help(t *testing.T) {
	handler := newHandlers(t, newMockAccountStore(), newMockPlayerStore())
	addr := testServer(t, handler)
	c := newTestClient(t, addr)

	c.waitForPrompt()
	c.send("help")
	output := c.readUntil("Disconnect", 2*time.Second)
	stripped := telnet.StripANSI(output)
	assert.Contains(t, stripped, "login")
	assert.Contains(t, stripped, "register")
}

func TestHandleSession_UnknownCommand(t *testing.T) {
	handler := newHandlers(t, newMockAccountStore(), newMockPlayerStore())
	addr := testServer(t, handler)
	c := newTestClient(t, addr)

	c.waitForPrompt()
	c.send("frobnicate")
	output := c.readUntil("available commands", 2*time.Second)
	assert.Contains(t, telnet.StripANSI(output), "frobnicate")
}

func TestHandleSession_RegisterValidation(t *testing.T) {
	handler := newHandlers(t, newMockAccountStore(), newMockPlayerStore())
	addr := testServer(t, handler)
	c := newTestClient(t, addr)

	c.waitForPrompt()
	c.send("register ab secret123")
	c.readUntil("3-32 characters", 2*time.Second)

	c.send("register alice short")
	c.readUntil("at least 6 characters", 2*time.Second)

	c.send("register alice secret123")
	c.readUntil("Account created", 2*time.Second)

	c.send("register alice secret123")
	c.readUntil("already taken", 2*time.Second)
}

func TestHandleSession_LoginFailures(t *testing.T) {
	accounts := newMockAccountStore()
	handler := newHandlers(t, accounts, newMockPlayerStore())
	addr := testServer(t, handler)
	c := newTestClient(t, addr)

	c.waitForPrompt()
	c.send("login ghost secret123")
	c.readUntil("Account not found", 2*time.Second)

	c.send("register alice secret123")
	c.readUntil("Account created", 2*time.Second)
	c.send("login alice wrongpass")
	c.readUntil("Invalid password", 2*time.Second)
}

func TestHandleSession_LoginEntersGame(t *testing.T) {
	accounts := newMockAccountStore()
	players := newMockPlayerStore()
	handler := newHandlers(t, accounts, players)
	addr := testServer(t, handler)
	c := newTestClient(t, addr)

	c.waitForPrompt()
	c.send("register alice secret123")
	c.readUntil("Account created", 2*time.Second)
	c.send("login alice secret123")
	c.readUntil("Welcome back", 2*time.Second)

	// The game loop opens with the starting room description.
	output := c.readUntil("quiet green", 3*time.Second)
	assert.NotEmpty(t, output)

	c.send("look")
	c.readUntil("village green", 3*time.Second)

	c.send("quit")
	c.readUntil("progress is saved", 2*time.Second)

	// Quitting persisted a snapshot for the account.
	assert.Len(t, players.snapshots, 1)
}
