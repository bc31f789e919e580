// Package ui renders plugboot output for people and machines.
//
// Three formats are supported: term (pterm printers, lipgloss styles and
// glamour markdown), text (plain lines for pipes and logs) and yaml. The
// Reporter in this package is what cmd/plugboot hands to library code so
// tool output reaches the user in the chosen format.
package ui
