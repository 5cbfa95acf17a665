// Package ui renders live countdowns in the terminal with bubbletea.
package ui
