// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
//
// Package:     logging
// Description: Output formats for log entries (text and JSON)
// Author:      Mike Stoffels with Claude
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format represents the output format for log entries
type Format int

const (
	// FormatText outputs human-readable text logs (default for a CLI)
	FormatText Format = iota

	// FormatJSON outputs structured JSON logs
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format, defaulting to text
func ParseFormat(format string) Format {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Entry is a single log entry before formatting
type Entry struct {
	Timestamp time.Time
	Level     Level
	Logger    string
	Message   string
	Fields    Fields
}

// formatEntry renders an entry in the given format, including the trailing
// newline
func formatEntry(e *Entry, f Format) []byte {
	if f == FormatJSON {
		return formatJSON(e)
	}
	return formatText(e)
}

func formatText(e *Entry) []byte {
	var b strings.Builder
	b.WriteString(e.Timestamp.Format("2006-01-02 15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(e.Level.ShortString())
	b.WriteString("]")
	if e.Logger != "" {
		b.WriteString(" ")
		b.WriteString(e.Logger)
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	// Deterministic field order for readable diffs
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, e.Fields[k]))
	}
	b.WriteString("\n")
	return []byte(b.String())
}

func formatJSON(e *Entry) []byte {
	obj := map[string]interface{}{
		"timestamp": e.Timestamp.Format(time.RFC3339Nano),
		"level":     e.Level.String(),
		"message":   e.Message,
	}
	if e.Logger != "" {
		obj["logger"] = e.Logger
	}
	for k, v := range e.Fields {
		if _, reserved := obj[k]; !reserved {
			obj[k] = v
		}
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return formatText(e)
	}
	return append(data, '\n')
}
