// Package session provides session management for the tile game server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Optional JSON file persistence, one file per session
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own engine, so boards never share state. A session
// remembers the config id it was created from and the seed of its game.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive and generated IDs never collide with sessions in memory
// or on disk.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "classic", config, seed)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Persistence:
//
// FilePersistence stores the full game state, including cells, score and
// move history. Loading a session rebuilds its board from the stored cells.
package session
