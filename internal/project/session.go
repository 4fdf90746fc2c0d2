// Package project persists batch sessions and application configuration
// as JSON files, so an interrupted batch run can resume where it
// stopped.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// sessionVersion is bumped when the session file layout changes.
const sessionVersion = "1.0.0"

// RowResult records the outcome of one batch row.
type RowResult struct {
	Problem model.Problem        `json:"problem"`
	Record  model.SolutionRecord `json:"record"`
}

// Session tracks a batch run against one source file. Results are keyed
// by the zero-based row index within the imported problem list, so a
// resumed run skips rows that already have a result.
type Session struct {
	Version    string            `json:"version"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
	SourceFile string            `json:"source_file"`
	Results    map[int]RowResult `json:"results"`
}

// NewSession starts an empty session for the given source file.
func NewSession(sourceFile string) Session {
	now := time.Now().UTC().Format(time.RFC3339)
	return Session{
		Version:    sessionVersion,
		CreatedAt:  now,
		UpdatedAt:  now,
		SourceFile: sourceFile,
		Results:    make(map[int]RowResult),
	}
}

// Complete records the solution for a row.
func (s *Session) Complete(row int, problem model.Problem, solution model.Solution) {
	if s.Results == nil {
		s.Results = make(map[int]RowResult)
	}
	s.Results[row] = RowResult{Problem: problem, Record: solution.Record()}
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// IsComplete reports whether a row already has a recorded result.
func (s *Session) IsComplete(row int) bool {
	_, ok := s.Results[row]
	return ok
}

// CompletedRows returns the recorded row indices in ascending order.
func (s *Session) CompletedRows() []int {
	rows := make([]int, 0, len(s.Results))
	for row := range s.Results {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// SaveSession writes the session to the given path as indented JSON,
// creating parent directories as needed.
func SaveSession(path string, session Session) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSession reads a session file. A missing version field marks the
// file as something other than a session and is rejected.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.Version == "" {
		return Session{}, fmt.Errorf("invalid session file: missing version field")
	}
	if session.Results == nil {
		session.Results = make(map[int]RowResult)
	}
	return session, nil
}

// LoadOrCreateSession loads the session at path, or starts a fresh one
// when the file does not exist. A session recorded against a different
// source file is discarded and replaced, since its row indices would
// not line up.
func LoadOrCreateSession(path, sourceFile string) (Session, error) {
	session, err := LoadSession(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSession(sourceFile), nil
		}
		return Session{}, err
	}
	if session.SourceFile != sourceFile {
		return NewSession(sourceFile), nil
	}
	return session, nil
}
