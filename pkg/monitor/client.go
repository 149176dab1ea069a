package monitor

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Client is one attached monitor connection.
type Client struct {
	mon  *Monitor
	conn *websocket.Conn
	Send chan []byte

	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}
}

// newClient creates a new client and registers it with the monitor.
func (mon *Monitor) newClient(conn *websocket.Conn, r *http.Request) *Client {
	c := &Client{
		mon:  mon,
		conn: conn,
		Send: make(chan []byte, 64),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")

	mon.register <- c
	return c
}

// ReadPump drains the connection. The monitor is one-way, so inbound
// messages are discarded; the pump exists to notice the close.
func (c *Client) ReadPump() {
	defer func() {
		c.mon.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return // connection closed
		}
	}
}

// WritePump forwards broadcast frames to the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}
	}
	// monitor closed the channel
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
