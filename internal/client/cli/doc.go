// Package cli provides the interactive postbox command-line client.
//
// It wires configuration, the HTTP API client and a REPL. A background
// watcher probes the server's health endpoint and switches the prompt between
// online and offline.
//
// Typical session:
//
//	register
//	login
//	send bob hello
//	inbox
//	prune
//
// prune deletes up to the query time of the last inbox read, so messages
// that arrived after that read survive. The REPL is started via App.Root(ctx).
package cli
