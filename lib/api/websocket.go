package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

const (
	statsInterval = 2 * time.Second
	writeTimeout  = 10 * time.Second
)

// @Summary	Open websocket for realtime render statistics
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't make websocket: %s", err), http.StatusBadRequest)
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			a.log("could not close websocket: %s", err)
		}
	}(ws)
	a.addClient(ws)

	done := make(chan struct{})
	defer close(done)
	go a.websocketWriter(ws, done)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			a.removeClient(ws)
			break
		}
	}
}

func (a *Api) addClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	a.wsClients[ws] = true
	a.ctrl.Stats().SetWsClients(len(a.wsClients))
}

func (a *Api) removeClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	delete(a.wsClients, ws)
	a.ctrl.Stats().SetWsClients(len(a.wsClients))
}

func (a *Api) websocketWriter(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	if !a.writeStats(ws) {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !a.writeStats(ws) {
				return
			}
		}
	}
}

func (a *Api) writeStats(ws *websocket.Conn) bool {
	packet, err := json.Marshal(a.ctrl.Stats().Snapshot())
	if err != nil {
		return false
	}
	err = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		a.log("could not set write deadline: %s", err)
		return false
	}
	return ws.WriteMessage(websocket.TextMessage, packet) == nil
}
