package net

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
)

// connController owns the JSON encoder and decoder of one connection. Replies
// and notifications are written from different goroutines, so sends are
// serialized.
type connController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
}

func newConnController(conn net.Conn) *connController {
	return &connController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

func (c *connController) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// receive reads the next raw envelope. A syntax error leaves the stream
// unrecoverable and is returned to the caller.
func (c *connController) receive() (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
