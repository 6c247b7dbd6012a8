// Package session provides session management for the Connect Four server.
//
// A session pairs one match with its own board, so concurrent games never
// share state. The Manager stores sessions in memory under short, case
// insensitive IDs generated from cryptographic randomness, and is safe for
// concurrent use.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", preset)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Sessions are removed explicitly with Delete or in bulk by
// CleanupExpiredSessions once they have been idle for too long. Nothing is
// written to disk.
package session
