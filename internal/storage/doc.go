// Package storage persists the calculator event stream: every session's
// key presses go to an append-only JSONL tape, and a tracker keeps the
// session's meta.json current. Tapes can be read back and replayed.
package storage
