// Package main hosts the sortdir CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration and logging once, then
// hands the target folder to the sorting package and renders the resulting
// report as text or JSON. Classification previews and configuration
// scaffolding live here too.
//
// Keep this package lean: behavior belongs in the internal packages and the
// commands here only translate flags and format output.
package main
