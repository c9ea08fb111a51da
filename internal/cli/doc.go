// Package cli provides the interactive SynthScan command-line client.
//
// It wires configuration, the local history database, the detector API
// client, and an interactive REPL. Typical flow: unlock the stored API key,
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Analyze a media file and render the verdict
//   - Retry / reset the current analysis session
//   - List / show / delete archived analyses
//   - Export an analysis as a PDF report
//   - Store the detector API key in an encrypted keyring
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartDetectorWatcher, and runREPL for details.
package cli
