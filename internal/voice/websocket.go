package voice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type command struct {
	Type      string           `json:"type"`
	Assistant *AssistantConfig `json:"assistant,omitempty"`
	Muted     *bool            `json:"muted,omitempty"`
}

// WebsocketDialer opens calls against a provider that speaks JSON frames over a websocket.
type WebsocketDialer struct {
	URL         string
	APIKey      string
	DialTimeout time.Duration
}

func NewWebsocketDialer(url, apiKey string, timeout time.Duration) *WebsocketDialer {
	return &WebsocketDialer{URL: url, APIKey: apiKey, DialTimeout: timeout}
}

func (d *WebsocketDialer) Dial(ctx context.Context, cfg AssistantConfig) (Conn, error) {
	if d.URL == "" {
		return nil, ErrNotConfigured
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.DialTimeout,
	}

	header := http.Header{}
	if d.APIKey != "" {
		header.Set("Authorization", "Bearer "+d.APIKey)
	}

	ws, resp, err := dialer.DialContext(ctx, d.URL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", d.URL, err)
	}

	conn := &wsConn{ws: ws}
	if err := conn.send(command{Type: "start", Assistant: &cfg}); err != nil {
		ws.Close()
		return nil, err
	}
	return conn, nil
}

type wsConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *wsConn) send(cmd command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) ReadEvent() (Event, error) {
	var ev Event
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return ev, io.EOF
		}
		return ev, err
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("decode voice event: %w", err)
	}
	return ev, nil
}

func (c *wsConn) SetMuted(muted bool) error {
	return c.send(command{Type: "set-muted", Muted: &muted})
}

func (c *wsConn) Hangup() error {
	return c.send(command{Type: "end-call"})
}

func (c *wsConn) Close() error {
	c.mu.Lock()
	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.mu.Unlock()
	return c.ws.Close()
}
