package mandel

import (
	"context"
	"fmt"
	"image"
	"io"
	"net"
	"strings"

	"github.com/coder/websocket"
	"github.com/marben/irpc"
)

// Client renders requests on a remote server over irpc.
type Client struct {
	ep       *irpc.Endpoint
	renderer *RendererIrpcClient
}

// Dial connects to a render server. network is "tcp" for a plain TCP address
// or "ws" for a websocket URL such as ws://localhost:8080/ws.
func Dial(ctx context.Context, network, addr string) (*Client, error) {
	switch network {
	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("dial tcp %s: %w", addr, err)
		}
		return NewClient(conn)
	case "ws":
		if !strings.Contains(addr, "://") {
			addr = "ws://" + addr
		}
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("dial websocket %s: %w", addr, err)
		}
		// a whole frame may arrive as one message
		c.SetReadLimit(int64(MaxFrameBytes) + 1<<16)
		// the connection must outlive ctx, which may only bound the dial
		return NewClient(websocket.NetConn(context.Background(), c, websocket.MessageBinary))
	}
	return nil, fmt.Errorf("unknown network %q", network)
}

// NewClient starts an irpc endpoint on an established connection.
// The connection is closed with the client.
func NewClient(conn io.ReadWriteCloser) (*Client, error) {
	ep := irpc.NewEndpoint(conn)
	rc, err := NewRendererIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("NewRendererIrpcClient: %w", err)
	}
	return &Client{ep: ep, renderer: rc}, nil
}

// Render implements Renderer.
func (c *Client) Render(req Request) (Frame, error) {
	if err := req.Validate(); err != nil {
		return Frame{}, err
	}
	return c.renderer.Render(req)
}

// RenderImage renders req remotely and decompresses the result.
func (c *Client) RenderImage(req Request) (*image.RGBA, error) {
	f, err := c.Render(req)
	if err != nil {
		return nil, err
	}
	return f.Image()
}

func (c *Client) Close() error {
	return c.ep.Close()
}

var _ Renderer = (*Client)(nil)
