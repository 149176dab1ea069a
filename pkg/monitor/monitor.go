// Package monitor serves a live view of a running machine over
// WebSocket. Attached clients receive binary frames carrying the
// machine state and a rolling disassembly of the code around the PC;
// identical consecutive frames are deduplicated by hash so an idle
// machine costs no bandwidth.
package monitor

import (
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-8080/internal/i8080"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// Frame type identifiers, the first byte of every broadcast message.
const (
	// FrameState carries a machine state snapshot.
	FrameState = 0x01
	// FrameDisasm carries the disassembly of the instructions around
	// the PC, one per line.
	FrameDisasm = 0x02
)

// DefaultInterval is the broadcast interval used when none is
// configured.
const DefaultInterval = time.Second / 10

// Monitor broadcasts machine snapshots to connected clients.
type Monitor struct {
	m *i8080.Machine

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	interval  time.Duration
	lastState uint64
	lastDis   uint64

	log.Logger

	mu sync.Mutex
}

// New returns a Monitor observing the given machine.
func New(m *i8080.Machine, l log.Logger) *Monitor {
	return &Monitor{
		m:          m,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		interval:   DefaultInterval,
		Logger:     l,
	}
}

// SetInterval overrides the broadcast interval.
func (mon *Monitor) SetInterval(d time.Duration) {
	mon.interval = d
}

// ListenAndServe serves the monitor on the given address. It blocks,
// so it is usually run in its own goroutine.
func (mon *Monitor) ListenAndServe(addr string) error {
	http.HandleFunc("/monitor", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Access-Control-Allow-Origin", "*")

		// upgrade the connection to a websocket connection
		conn, err := upgrader.Upgrade(wr, r, nil)
		if err != nil {
			mon.Errorf("upgrading %s: %v", r.RemoteAddr, err)
			return
		}

		c := mon.newClient(conn, r)

		// spawn read/write pumps
		go c.ReadPump()
		go c.WritePump()
	})

	// snapshot broadcasts
	go func() {
		t := time.NewTicker(mon.interval)
		for range t.C {
			mon.snapshot()
		}
	}()

	go mon.run()

	return http.ListenAndServe(addr, nil)
}

// run owns the client set.
func (mon *Monitor) run() {
	for {
		select {
		case c := <-mon.register:
			mon.clients[c] = true
			mon.Infof("monitor client %s attached", c.Metadata.RemoteAddr)
		case c := <-mon.unregister:
			if _, ok := mon.clients[c]; ok {
				delete(mon.clients, c)
				close(c.Send)
				mon.Infof("monitor client %s detached", c.Metadata.RemoteAddr)
			}
		case msg := <-mon.broadcast:
			for c := range mon.clients {
				select {
				case c.Send <- msg:
				default:
					close(c.Send)
					delete(mon.clients, c)
				}
			}
		}
	}
}

// snapshot captures the machine and broadcasts any frame whose
// content changed since the last broadcast.
func (mon *Monitor) snapshot() {
	mon.mu.Lock()
	defer mon.mu.Unlock()

	state := mon.m.SaveState().Bytes()
	if hash := xxhash.Sum64(state); hash != mon.lastState {
		mon.lastState = hash
		mon.broadcast <- append([]byte{FrameState}, state...)
	}

	dis := mon.m.DisassembleContext()
	if hash := xxhash.Sum64(dis); hash != mon.lastDis {
		mon.lastDis = hash
		mon.broadcast <- append([]byte{FrameDisasm}, dis...)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
