package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

const writeTimeout = 10 * time.Second

// eventQueueLen bounds how many state events may wait for slow clients
// before new ones are dropped. A run produces four.
const eventQueueLen = 64

// EventState is pushed to websocket clients on every state change.
type EventState struct {
	Event string `json:"event"`
	State string `json:"state"`
}

// wsClient serialises writes, gorilla allows one writer at a time.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(v any) error {
	packet, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		return fmt.Errorf("could not set write deadline: %w", err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, packet)
}

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		status
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		a.log.Errorf("couldn't make websocket: %s", err)
		return
	}
	client := &wsClient{conn: ws}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			a.log.Debugf("could not close websocket: %s", err)
		}
	}(ws)
	a.setClient(client, true)
	defer a.setClient(client, false)

	done := make(chan struct{})
	defer close(done)
	go a.websocketWriter(client, done)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		a.log.Debugf("Received: %s", msg)
	}
}

func (a *Api) setClient(c *wsClient, connected bool) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	if connected {
		a.wsClients[c] = true
	} else {
		delete(a.wsClients, c)
	}
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) websocketWriter(c *wsClient, done <-chan struct{}) {
	state := EventState{Event: "state", State: a.output.State().String()}
	if err := c.write(state); err != nil {
		return
	}

	pingTicker := time.NewTicker(2 * time.Second)
	defer pingTicker.Stop()
	for {
		select {
		case <-done:
			return
		case <-pingTicker.C:
			if err := c.write(a.Stats.Snapshot()); err != nil {
				return
			}
		}
	}
}

// queueEvent is called from the render thread and never blocks it.
func (a *Api) queueEvent(e EventState) {
	select {
	case a.events <- e:
	default:
		a.log.Warnf("dropping %s event %s, clients are too slow", e.Event, e.State)
	}
}

// broadcaster pushes queued events one at a time so every client sees
// them in the order they happened.
func (a *Api) broadcaster() {
	for e := range a.events {
		a.broadcast(e)
	}
}

func (a *Api) broadcast(v any) {
	a.wsMutex.Lock()
	clients := make([]*wsClient, 0, len(a.wsClients))
	for c := range a.wsClients {
		clients = append(clients, c)
	}
	a.wsMutex.Unlock()

	for _, c := range clients {
		if err := c.write(v); err != nil {
			a.log.Debugf("could not push event: %s", err)
		}
	}
}
