// Package ui implements the terminal progress and results view using Bubbletea.
// It only reads the scan snapshot; scanning and deletion go through the
// core controller.
package ui
