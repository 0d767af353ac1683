// Package prompts persists refined prompts so they can be reopened later.
package prompts

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one refinement: the draft the user wrote and the model's rewrite.
type Entry struct {
	ID           string    `json:"id"`
	Instructions string    `json:"instructions"`
	Refined      string    `json:"refined"`
	Model        string    `json:"model"`
	Attachments  []string  `json:"attachments,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewEntry stamps a fresh ID and creation time.
func NewEntry(instructions, refined, model string, attachments []string) Entry {
	return Entry{
		ID:           uuid.NewString(),
		Instructions: instructions,
		Refined:      refined,
		Model:        model,
		Attachments:  append([]string(nil), attachments...),
		CreatedAt:    time.Now(),
	}
}

// Title is a one-line preview of the entry.
func (e Entry) Title(limit int) string {
	text := strings.Join(strings.Fields(e.Instructions), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// DefaultPath is the history file under the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "promptmaker-history.json")
	}
	return filepath.Join(dir, "promptmaker", "history.json")
}

// Save appends entries to the history file, creating it if necessary.
func Save(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	existing, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	existing = append(existing, entries...)
	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load returns every stored entry, oldest first.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Recent returns up to limit entries, newest first. A missing file is an
// empty history.
func Recent(path string, limit int) ([]Entry, error) {
	entries, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
