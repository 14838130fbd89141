package views

import (
	"time"

	"github.com/KaramelBytes/odpanel/internal/session"
)

// TableInfo describes one loaded table.
type TableInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Skipped int    `json:"skipped,omitempty"`
}

// HomeView is the landing page: the loaded tables, or why loading failed.
type HomeView struct {
	SessionID string      `json:"session_id"`
	CreatedAt time.Time   `json:"created_at"`
	LoadedAt  time.Time   `json:"loaded_at"`
	Loaded    bool        `json:"loaded"`
	Tables    []TableInfo `json:"tables,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Home lists the session's tables with their row counts.
func Home(s *session.Session) HomeView {
	v := HomeView{SessionID: s.ID, CreatedAt: s.CreatedAt, LoadedAt: s.LoadedAt()}
	reg, err := s.Registry()
	defer func() { record("home", err) }()
	if err != nil {
		v.Error = err.Error()
		return v
	}
	v.Loaded = true
	for _, e := range reg.Entries() {
		v.Tables = append(v.Tables, TableInfo{
			Name:    e.Name,
			Kind:    e.Kind.String(),
			Rows:    e.Table.Len(),
			Columns: len(e.Table.Columns),
			Skipped: e.Table.Skipped,
		})
	}
	return v
}
