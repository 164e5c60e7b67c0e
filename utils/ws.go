package utils

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// wsWriter is the write half of a dashboard connection.
type wsWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// wsClient serializes writes to one connection. The underlying websocket
// forbids concurrent WriteMessage calls, and order notifications arrive from
// one goroutine per order, so every write must hold the client's lock.
type wsClient struct {
	mu   sync.Mutex
	conn wsWriter
}

var (
	wsMu      sync.RWMutex
	wsClients = make(map[string][]*wsClient)
)

func RegisterWSClient(sellerID string, conn *websocket.Conn) {
	registerWSWriter(sellerID, conn)
}

func UnregisterWSClient(sellerID string, conn *websocket.Conn) {
	unregisterWSWriter(sellerID, conn)
}

func registerWSWriter(sellerID string, w wsWriter) {
	wsMu.Lock()
	defer wsMu.Unlock()
	wsClients[sellerID] = append(wsClients[sellerID], &wsClient{conn: w})
}

func unregisterWSWriter(sellerID string, w wsWriter) {
	wsMu.Lock()
	defer wsMu.Unlock()

	clients := wsClients[sellerID]
	for i, client := range clients {
		if client.conn == w {
			wsClients[sellerID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(wsClients[sellerID]) == 0 {
		delete(wsClients, sellerID)
	}
}

// SendPersonalMessageToSeller pushes a JSON payload to every dashboard
// session the seller has open. Dead connections are skipped; they clean
// themselves up when their read loop exits.
func SendPersonalMessageToSeller(sellerID string, event string, payload interface{}) {
	body, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		return
	}

	wsMu.RLock()
	clients := append([]*wsClient(nil), wsClients[sellerID]...)
	wsMu.RUnlock()

	for _, client := range clients {
		client.mu.Lock()
		_ = client.conn.WriteMessage(websocket.TextMessage, body)
		client.mu.Unlock()
	}
}
