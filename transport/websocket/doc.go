// Package websocket pushes live board updates to browser clients.
//
// A central Hub keeps the connected clients grouped by session ID. Each
// connection gets a read pump that handles pings and close frames and a
// write pump that drains the client's queue. Clients only listen: moves
// go through the REST or MCP transports and the resulting state is
// broadcast here.
//
// Message Protocol:
//
// Every frame is one JSON object:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "game_over", "data": {...}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//	hub.BroadcastToSession("ab12", state)
//
// A client whose queue fills up is dropped rather than blocking the
// broadcaster.
package websocket
