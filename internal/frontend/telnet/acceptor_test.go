package telnet

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rowanvale/lantern/internal/config"
)

// parrotHandler plays a stub game loop: every line comes back prefixed
// until the player types quit.
type parrotHandler struct {
	sessions atomic.Int32
}

func (h *parrotHandler) HandleSession(_ context.Context, conn *Conn) error {
	h.sessions.Add(1)
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return err
		}
		if line == "quit" {
			_ = conn.WriteLine("Farewell.")
			return nil
		}
		_ = conn.WriteLine("You said: " + line)
	}
}

func startAcceptor(t *testing.T, handler SessionHandler) *Acceptor {
	t.Helper()
	cfg := config.TelnetConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	acc := NewAcceptor(cfg, handler, zaptest.NewLogger(t))

	go func() { _ = acc.ListenAndServe() }()

	require.Eventually(t, func() bool {
		return acc.IsRunning() && acc.Addr() != ""
	}, 2*time.Second, 10*time.Millisecond, "acceptor never came up")
	return acc
}

// dialPlayer connects, discards the option negotiation, and returns a
// line reader over the plain text that follows.
func dialPlayer(t *testing.T, addr string) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	r := bufio.NewReader(conn)
	for i := 0; i < 3; i++ { // IAC WILL SuppressGoAhead
		_, err := r.ReadByte()
		require.NoError(t, err)
	}
	return conn, r
}

func TestAcceptorServesAndStops(t *testing.T) {
	handler := &parrotHandler{}
	acc := startAcceptor(t, handler)

	conn, r := dialPlayer(t, acc.Addr())

	_, err := conn.Write([]byte("look\r\n"))
	require.NoError(t, err)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "You said: look", strings.TrimRight(line, "\r\n"))

	_, err = conn.Write([]byte("quit\r\n"))
	require.NoError(t, err)
	line, err = r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Farewell.", strings.TrimRight(line, "\r\n"))

	acc.Stop()
	assert.False(t, acc.IsRunning())
	assert.Equal(t, int32(1), handler.sessions.Load())
}

func TestAcceptorHandlesConcurrentPlayers(t *testing.T) {
	handler := &parrotHandler{}
	acc := startAcceptor(t, handler)

	const players = 3
	for i := 0; i < players; i++ {
		conn, r := dialPlayer(t, acc.Addr())
		_, err := conn.Write([]byte("quit\r\n"))
		require.NoError(t, err)
		_, err = r.ReadString('\n')
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return handler.sessions.Load() == players
	}, 2*time.Second, 10*time.Millisecond)

	acc.Stop()
}

func TestAcceptorStopIsIdempotent(t *testing.T) {
	acc := startAcceptor(t, &parrotHandler{})
	acc.Stop()
	acc.Stop()
	assert.False(t, acc.IsRunning())
}
