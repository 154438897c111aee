// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// An App loads one document, builds a session for it and then either serves
// it to renderers over socket.io or applies a list of actions and prints the
// resulting render tree (or a YAML dump of its state).
package app
