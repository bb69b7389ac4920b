package twitch

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/habbi3/spinbot/internal/domain"
)

// TriggerHandler receives every trigger parsed from chat.
type TriggerHandler func(ctx context.Context, trigger domain.TriggerEvent)

// Client maintains an anonymous read-only IRC-over-WebSocket connection
// to a single Twitch channel and forwards parsed triggers.
type Client struct {
	url     string
	channel string
	nick    string
	handler TriggerHandler

	conn     *websocket.Conn
	mu       sync.RWMutex
	shutdown chan struct{}
	wg       sync.WaitGroup

	connected bool
}

// NewClient creates a client for the given channel. The channel name is
// lowercased; Twitch channel names are case-insensitive logins.
func NewClient(url, channel string, handler TriggerHandler) *Client {
	if url == "" {
		url = DefaultIRCURL
	}
	return &Client{
		url:     url,
		channel: strings.ToLower(strings.TrimPrefix(channel, "#")),
		//nolint:gosec // anonymous login nick, not security sensitive
		nick:     fmt.Sprintf("%s%d", AnonymousNickPrefix, 10000+rand.Intn(90000)),
		handler:  handler,
		shutdown: make(chan struct{}),
	}
}

// Start begins the connection with auto-reconnect
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop gracefully shuts down the client
func (c *Client) Stop() {
	close(c.shutdown)
	c.wg.Wait()

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
}

// IsConnected returns whether the client is currently connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := DefaultReconnectDelay

	for {
		select {
		case <-c.shutdown:
			slog.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			slog.Info(LogMsgClientStopped)
			return
		default:
		}

		err := c.connect(ctx)
		c.setConnected(false)
		if err != nil {
			slog.Warn(LogMsgReconnecting, "error", err, "backoff", backoff)

			select {
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
				if backoff > MaxReconnectDelay {
					backoff = MaxReconnectDelay
				}
			case <-c.shutdown:
				return
			case <-ctx.Done():
				return
			}
		} else {
			backoff = DefaultReconnectDelay
		}
	}
}

func (c *Client) connect(ctx context.Context) error {
	slog.Info(LogMsgConnecting, "url", c.url, "channel", c.channel)

	dialer := websocket.Dialer{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect: %w (status: %s, code: %d)", err, resp.Status, resp.StatusCode)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	handshake := []string{
		"CAP REQ :" + Capabilities,
		"NICK " + c.nick,
		"JOIN #" + c.channel,
	}
	for _, line := range handshake {
		if err := c.send(line); err != nil {
			conn.Close()
			return fmt.Errorf("handshake failed: %w", err)
		}
	}

	c.setConnected(true)
	slog.Info(LogMsgJoined, "channel", c.channel)

	return c.readLoop(ctx)
}

func (c *Client) readLoop(ctx context.Context) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	for {
		select {
		case <-c.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			slog.Warn(LogMsgReadError, "error", err)
			return err
		}

		// A single WebSocket frame can carry multiple IRC lines.
		for _, line := range strings.Split(string(data), "\r\n") {
			if err := c.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (c *Client) handleLine(ctx context.Context, line string) error {
	msg, ok := ParseMessage(line)
	if !ok {
		return nil
	}

	switch msg.Command {
	case CmdPing:
		return c.send(CmdPong + " :" + msg.Trailing)
	case CmdReconnect:
		slog.Info(LogMsgServerRestart)
		return fmt.Errorf("server requested reconnect")
	case CmdPrivMsg:
		if trigger, ok := TriggerFromMessage(msg); ok {
			c.handler(ctx, trigger)
		}
	}
	return nil
}

func (c *Client) send(line string) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("no connection")
	}

	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
}

func (c *Client) setConnected(connected bool) {
	c.mu.Lock()
	c.connected = connected
	c.mu.Unlock()
}
