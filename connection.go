package main

import (
	"log"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// sendBufferSize bounds the per-connection outbound queue. A client that
// stops reading fills its own queue and gets dropped; nobody else stalls.
const sendBufferSize = 64

// transport abstracts one framed byte stream. The desktop client speaks
// length-prefixed TCP, the browser client speaks WebSocket text messages;
// both carry identical JSON payloads.
type transport interface {
	ReadFrame() ([]byte, error)
	WriteFrame(payload []byte) error
	Close() error
}

type tcpTransport struct {
	conn net.Conn
}

func (t *tcpTransport) ReadFrame() ([]byte, error)      { return ReadFrame(t.conn) }
func (t *tcpTransport) WriteFrame(payload []byte) error { return WriteFrame(t.conn, payload) }
func (t *tcpTransport) Close() error                    { return t.conn.Close() }

type wsTransport struct {
	ws *websocket.Conn
}

func (t *wsTransport) ReadFrame() ([]byte, error) {
	_, raw, err := t.ws.ReadMessage()
	return raw, err
}

func (t *wsTransport) WriteFrame(payload []byte) error {
	return t.ws.WriteMessage(websocket.TextMessage, payload)
}

func (t *wsTransport) Close() error { return t.ws.Close() }

// Conn manages a single player session over either transport.
type Conn struct {
	ID   string // connection identity, for logs and the registry
	Slot int    // player slot 1..4 bound at accept

	tr     transport
	send   chan []byte
	done   chan struct{}
	mu     sync.Mutex // protects closed
	closed bool
}

// NewConn wraps a transport and starts its write pump.
func NewConn(tr transport) *Conn {
	c := &Conn{
		ID:   uuid.New().String(),
		tr:   tr,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	go c.writePump()
	return c
}

// writePump drains the send queue onto the transport. Runs until Close.
func (c *Conn) writePump() {
	for {
		select {
		case payload := <-c.send:
			if err := c.tr.WriteFrame(payload); err != nil {
				log.Printf("write error for %s: %v", c.ID, err)
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// Send serializes msg and enqueues it for this connection.
func (c *Conn) Send(msg interface{}) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return err
	}
	c.SendFrame(payload)
	return nil
}

// SendFrame enqueues a pre-encoded frame. If the queue is full the client
// is not keeping up; the connection is closed rather than blocking the
// caller, which may hold the world lock.
func (c *Conn) SendFrame(payload []byte) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	select {
	case c.send <- payload:
	default:
		log.Printf("send queue full for %s, dropping connection", c.ID)
		c.Close()
	}
}

// Close marks the connection closed and releases the transport. Safe to
// call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	close(c.done)
	c.tr.Close()
}

// ReadLoop decodes intents from the transport until it disconnects.
// Malformed frames are logged and dropped; the connection stays open.
// onDisconnect runs exactly once, after the loop exits.
func (c *Conn) ReadLoop(onMessage func(*Conn, ClientMessage), onDisconnect func(*Conn)) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		raw, err := c.tr.ReadFrame()
		if err != nil {
			return
		}
		msg, err := DecodeClientMessage(raw)
		if err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}
		onMessage(c, msg)
	}
}

// ConnManager manages all active connections
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewConnManager creates an empty connection manager
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers a connection
func (m *ConnManager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID] = c
}

// Remove unregisters a connection
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Count returns the number of active connections
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// Snapshot returns a copy of all current connections, safe to iterate while
// connects and disconnects mutate the registry.
func (m *ConnManager) Snapshot() []*Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		list = append(list, c)
	}
	return list
}
