// Package client assembles the diary client runtime.
//
// It wires configuration, local storage, the remote adapter, connectivity
// monitoring, and background synchronization into a single process
// lifecycle consumed by the command-line interface.
package client
