package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

// handleWSSearch reads search requests and answers each with a progress
// message per completed depth followed by a result message.
func (s *Server) handleWSSearch(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	var requests = make(chan []byte)
	go func() {
		defer cancel()
		defer close(requests)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case requests <- message:
			case <-ctx.Done():
				return
			}
		}
	}()

	for message := range requests {
		var req searchRequest
		if err := json.Unmarshal(message, &req); err != nil {
			if conn.WriteJSON(wsMessage{Type: "error", Error: "invalid payload"}) != nil {
				return
			}
			continue
		}
		var searchParams, err = req.searchParams()
		if err != nil {
			if conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()}) != nil {
				return
			}
			continue
		}
		var writeFailed bool
		searchParams.Progress = func(si common.SearchInfo) {
			var resp = toSearchResponse(si)
			if conn.WriteJSON(wsMessage{Type: "progress", Result: &resp}) != nil {
				writeFailed = true
				cancel()
			}
		}
		var si = s.search(ctx, searchParams)
		if writeFailed {
			return
		}
		var resp = toSearchResponse(si)
		if err := conn.WriteJSON(wsMessage{Type: "result", Result: &resp}); err != nil {
			s.logger.Debug().Err(err).Msg("websocket write")
			return
		}
	}
}
