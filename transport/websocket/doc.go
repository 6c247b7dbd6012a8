// Package websocket pushes live match updates to spectators.
//
// A central Hub tracks connections per session. Clients attach with the
// session ID in the query string (/ws?session=ab12), receive a "connected"
// event carrying their client ID, then the current match state, then a
// "state_update" message after every change made through the REST API or
// the MCP tools. Spectators never send moves over the socket.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, state)
//
// Clients whose send buffer fills up are disconnected rather than slowing
// down a broadcast. Cancelling the context given to Run disconnects
// everyone.
package websocket
