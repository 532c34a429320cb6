// Package main hosts the mriseq CLI entrypoint and command graph.
//
// The Cobra-based command tree loads the protocol reference table (from the
// configured CSV or its SQLite snapshot) and exposes the sequence classifier
// to the terminal: classifying labels, inspecting reference rows, printing
// standard names, importing snapshots, and scaffolding configuration.
//
// Keep this package lean: classification rules live in internal/sequence and
// storage in internal/snapshot; commands here only wire and render.
package main
