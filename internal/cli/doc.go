// Package cli defines the cubegraph command-line interface. It parses
// flags into an app.Config and hands control to the app package.
package cli
