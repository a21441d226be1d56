// Package main hosts the sentalign CLI entrypoint and command graph.
//
// The Cobra-based command tree reads two sequence files, runs the alignment
// pipeline, and renders the resulting groups as a table, plain text, or JSON.
// It also manages the run history store and configuration scaffolding.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
