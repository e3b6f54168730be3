// Package export moves encoded output to its destinations: the system
// clipboard and the local filesystem.
package export
