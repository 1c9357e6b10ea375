package control

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client talks to a running host. It is safe for concurrent use; round trips
// are serialised.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to a control server at url, e.g. ws://127.0.0.1:7878/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Do sends action and waits for its response.
func (c *Client) Do(ctx context.Context, action string) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(10 * time.Second)
	}
	c.conn.SetWriteDeadline(deadline)
	c.conn.SetReadDeadline(deadline)

	if err := c.conn.WriteJSON(Request{Action: action}); err != nil {
		return Response{}, fmt.Errorf("send %s: %w", action, err)
	}
	var resp Response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return Response{}, fmt.Errorf("read %s response: %w", action, err)
	}
	return resp, nil
}

// Close says goodbye to the server and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
