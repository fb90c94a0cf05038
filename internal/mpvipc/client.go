// Package mpvipc is a minimal client for mpv's JSON IPC protocol
// over a unix socket (--input-ipc-server).
//
// The protocol is line-delimited JSON: commands carry a request_id
// that the reply echoes back, and asynchronous events (property
// changes among them) arrive interleaved with replies. See
// https://mpv.io/manual/stable/#json-ipc
package mpvipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// ErrClosed is returned for requests on a closed client.
var ErrClosed = errors.New("mpvipc: connection closed")

// request is the wire form of an mpv command.
type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// response is the wire form of a reply or event.
type response struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
	Event     string          `json:"event"`
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
}

// Client is an mpv JSON IPC connection. Requests may be issued from
// any goroutine; a single reader goroutine dispatches replies and
// events. Observer callbacks run on the reader goroutine and must
// not block.
type Client struct {
	conn net.Conn

	wmu       sync.Mutex // serializes request writes
	mu        sync.Mutex
	nextID    int64
	pending   map[int64]chan response
	observers map[int64]func(data json.RawMessage)
	closed    bool

	done chan struct{}
	err  error
}

// Dial connects to an mpv IPC socket, retrying until the deadline:
// mpv creates the socket some time after it starts.
func Dial(path string, timeout time.Duration) (*Client, error) {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("unix", path)
		if err == nil {
			return newClient(conn), nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("mpvipc: dial %s: %w", path, err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func newClient(conn net.Conn) *Client {
	c := &Client{
		conn:      conn,
		nextID:    1,
		pending:   make(map[int64]chan response),
		observers: make(map[int64]func(json.RawMessage)),
		done:      make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Close terminates the connection. Pending requests fail with
// ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}

// Done is closed when the connection ends, from either side.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the connection ended, if it has.
func (c *Client) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// readLoop dispatches replies to their waiters and events to their
// observers until the connection breaks.
func (c *Client) readLoop() {
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			continue
		}
		if resp.Event != "" {
			c.dispatchEvent(resp)
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.RequestID]
		if ok {
			delete(c.pending, resp.RequestID)
		}
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}

	err := scanner.Err()
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		delete(c.pending, id)
		close(ch)
	}
	c.mu.Unlock()
	c.err = err
	close(c.done)
}

func (c *Client) dispatchEvent(resp response) {
	if resp.Event != "property-change" {
		return
	}
	c.mu.Lock()
	fn := c.observers[resp.ID]
	c.mu.Unlock()
	if fn != nil {
		fn(resp.Data)
	}
}

// Command sends an mpv command and waits for its reply.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	id := c.nextID
	c.nextID++
	ch := make(chan response, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		c.forget(id)
		return nil, err
	}
	payload = append(payload, '\n')
	c.wmu.Lock()
	_, err = c.conn.Write(payload)
	c.wmu.Unlock()
	if err != nil {
		c.forget(id)
		return nil, err
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, ErrClosed
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpvipc: %v: %s", args, resp.Error)
		}
		return resp.Data, nil
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

func (c *Client) forget(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// GetProperty reads an mpv property into out.
func (c *Client) GetProperty(ctx context.Context, name string, out any) error {
	data, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// SetProperty writes an mpv property.
func (c *Client) SetProperty(ctx context.Context, name string, value any) error {
	_, err := c.Command(ctx, "set_property", name, value)
	return err
}

// ObserveProperty registers a callback for changes of a property.
// mpv reports the current value immediately after registration. The
// callback runs on the reader goroutine; data is null when the
// property is unavailable.
func (c *Client) ObserveProperty(ctx context.Context, name string, fn func(data json.RawMessage)) (int64, error) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	if _, err := c.Command(ctx, "observe_property", id, name); err != nil {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
		return 0, err
	}
	return id, nil
}

// UnobserveProperty removes a property observer.
func (c *Client) UnobserveProperty(ctx context.Context, id int64) error {
	c.mu.Lock()
	delete(c.observers, id)
	c.mu.Unlock()
	_, err := c.Command(ctx, "unobserve_property", id)
	return err
}

// AF runs an af subcommand ("set", "add", ...) with a filter chain
// value, replacing or extending the active audio filter chain.
func (c *Client) AF(ctx context.Context, op, value string) error {
	_, err := c.Command(ctx, "af", op, value)
	return err
}
