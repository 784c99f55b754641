// Package cli implements taskctl, the command-line client for taskkeeper.
//
// One-shot cobra commands (tasks, users, prefs, ping) and the interactive
// shell both drive the same store.TaskStore, so a shell session shows
// optimistic changes immediately and snaps back when the server rejects
// them. Tasks can be referred to by full id, a unique id prefix or their
// 1-based position in the last listing.
package cli
