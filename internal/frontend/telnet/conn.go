package telnet

import (
	"bufio"
	"bytes"
	"net"
	"sync"
	"time"
)

// RFC 854 command bytes. A command is introduced by IAC; anything the
// game cares about arrives as plain text once these are stripped.
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	SE   byte = 240
	NOP  byte = 241
	GA   byte = 249

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// Conn is the player's wire into the world. It strips Telnet command
// sequences out of the byte stream so the session loop only ever sees
// the text a player typed, and it serializes writes so room broadcasts
// and prompt output from different goroutines do not interleave.
type Conn struct {
	raw net.Conn
	in  *bufio.Reader

	wmu sync.Mutex

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps an accepted TCP connection. A zero timeout disables
// the corresponding deadline.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		in:           bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate announces the options the server wants before the first
// prompt: suppress go-ahead, so output flows without GA markers.
func (c *Conn) Negotiate() error {
	return c.send([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine blocks until the player finishes a line. Telnet commands
// embedded in the stream are consumed silently, the line terminator
// (\n, \r, or \r\n) is dropped, and control characters other than tab
// never reach the parser.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	var line bytes.Buffer
	for {
		b, err := c.in.ReadByte()
		if err != nil {
			return line.String(), err
		}

		switch {
		case b == IAC:
			if err := c.consumeCommand(); err != nil {
				return line.String(), err
			}
		case b == '\n':
			return line.String(), nil
		case b == '\r':
			// Swallow the \n of a \r\n pair if one follows.
			if next, err := c.in.Peek(1); err == nil && next[0] == '\n' {
				_, _ = c.in.ReadByte()
			}
			return line.String(), nil
		case b < 32 && b != '\t':
			// control character, drop it
		default:
			line.WriteByte(b)
		}
	}
}

// consumeCommand eats one Telnet command whose IAC byte has already
// been read. Option negotiations carry one trailing byte and
// subnegotiations run until IAC SE. Everything is discarded; the
// server never honors a client request beyond what Negotiate sent.
func (c *Conn) consumeCommand() error {
	cmd, err := c.in.ReadByte()
	if err != nil {
		return err
	}

	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err := c.in.ReadByte()
		return err
	case SB:
		for {
			b, err := c.in.ReadByte()
			if err != nil {
				return err
			}
			if b != IAC {
				continue
			}
			next, err := c.in.ReadByte()
			if err != nil {
				return err
			}
			if next == SE {
				return nil
			}
		}
	default:
		// Escaped 0xFF, NOP, GA: nothing to consume.
		return nil
	}
}

// ReadPassword reads one line with client echo suppressed, so the
// secret never shows on the player's screen. Echo is restored even
// when the read fails, and a bare newline moves the cursor past the
// invisible input.
func (c *Conn) ReadPassword() (string, error) {
	if err := c.send([]byte{IAC, WILL, OptEcho}); err != nil {
		return "", err
	}

	line, err := c.ReadLine()

	_ = c.send([]byte{IAC, WONT, OptEcho})
	_ = c.send([]byte("\r\n"))

	return line, err
}

// WriteLine sends text to the player followed by the \r\n the Telnet
// NVT expects.
func (c *Conn) WriteLine(text string) error {
	return c.send(append([]byte(text), '\r', '\n'))
}

// Write sends raw bytes, already carrying whatever line endings and
// color codes the caller wants.
func (c *Conn) Write(data []byte) error {
	return c.send(data)
}

// WritePrompt sends a prompt with no trailing newline so the player
// types on the same line.
func (c *Conn) WritePrompt(prompt string) error {
	return c.send([]byte(prompt))
}

// send is the single write path. It holds the write lock for the full
// write so concurrent broadcasts come out whole.
func (c *Conn) send(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	return err
}

// Close tears down the underlying TCP connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr reports the client's network address for logging.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

// FilterIAC strips Telnet command sequences from a byte slice. An
// escaped IAC (0xFF 0xFF) decodes to a single literal 0xFF; every
// other command vanishes along with its parameters.
func FilterIAC(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); {
		if input[i] != IAC || i+1 >= len(input) {
			out = append(out, input[i])
			i++
			continue
		}

		switch cmd := input[i+1]; cmd {
		case WILL, WONT, DO, DONT:
			i += 3
		case SB:
			j := i + 2
			for j < len(input)-1 && !(input[j] == IAC && input[j+1] == SE) {
				j++
			}
			if j < len(input)-1 {
				j += 2
			}
			i = j
		case IAC:
			out = append(out, IAC)
			i += 2
		default:
			i += 2
		}
	}
	return out
}
