package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tride/tride/internal/models"
)

func dashSession(id, userName, task string, start time.Time, tags ...string) models.Session {
	s := models.Session{
		ID:        id,
		UserID:    "u-" + id,
		UserName:  userName,
		Task:      task,
		StartedAt: start,
	}
	for _, tag := range tags {
		s.Tags = append(s.Tags, models.Tag{Name: tag})
	}
	return s
}

func newTestDashboard(showAll bool) DashboardModel {
	return NewDashboardModel(nil, time.UTC, showAll, make(chan []models.Session, 1))
}

func update(t *testing.T, m DashboardModel, msg tea.Msg) DashboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(DashboardModel)
	if !ok {
		t.Fatalf("Update returned %T, want DashboardModel", next)
	}
	return out
}

func keyMsg(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardSnapshotReplacesView(t *testing.T) {
	m := newTestDashboard(true)
	now := time.Now()

	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("a", "Alice", "Revue GovWin", now.Add(-time.Hour)),
		dashSession("b", "Marc", "Build Android", now.Add(-2*time.Hour)),
	}))
	if len(m.visible) != 2 {
		t.Fatalf("visible = %d sessions, want 2", len(m.visible))
	}

	// A new snapshot fully replaces the previous one, no merging
	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("a", "Alice", "Revue GovWin", now.Add(-time.Hour)),
	}))
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d sessions after replacement, want 1", len(m.visible))
	}
}

func TestDashboardScopeToggle(t *testing.T) {
	m := newTestDashboard(false)
	now := time.Now()

	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("today", "Alice", "Revue GovWin", now.Add(-time.Minute)),
		dashSession("old", "Marc", "Build Android", now.AddDate(0, 0, -3)),
	}))
	if len(m.visible) != 1 || m.visible[0].ID != "today" {
		t.Fatalf("today scope shows %d sessions, want only the one from today", len(m.visible))
	}

	m = update(t, m, keyMsg("a"))
	if len(m.visible) != 2 {
		t.Fatalf("all-days scope shows %d sessions, want 2", len(m.visible))
	}

	m = update(t, m, keyMsg("a"))
	if len(m.visible) != 1 {
		t.Fatalf("toggling back shows %d sessions, want 1", len(m.visible))
	}
}

func TestDashboardTagCycle(t *testing.T) {
	m := newTestDashboard(true)
	now := time.Now()

	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("a", "Alice", "Revue GovWin", now.Add(-time.Hour), "govwin"),
		dashSession("b", "Marc", "Build Android", now.Add(-2*time.Hour), "android"),
	}))

	// Cycle: All → android → govwin → All (tags in sorted order)
	m = update(t, m, keyMsg("t"))
	if m.tagFilter != "android" {
		t.Fatalf("tagFilter = %q after first cycle, want %q", m.tagFilter, "android")
	}
	if len(m.visible) != 1 || m.visible[0].ID != "b" {
		t.Fatalf("android filter shows wrong sessions: %d", len(m.visible))
	}

	m = update(t, m, keyMsg("t"))
	if m.tagFilter != "govwin" {
		t.Fatalf("tagFilter = %q after second cycle, want %q", m.tagFilter, "govwin")
	}

	m = update(t, m, keyMsg("t"))
	if m.tagFilter != "All" {
		t.Fatalf("tagFilter = %q after full cycle, want %q", m.tagFilter, "All")
	}
	if len(m.visible) != 2 {
		t.Fatalf("All filter shows %d sessions, want 2", len(m.visible))
	}
}

func TestDashboardSearchApplyAndClear(t *testing.T) {
	m := newTestDashboard(true)
	now := time.Now()

	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("a", "Alice", "Revue GovWin", now.Add(-time.Hour)),
		dashSession("b", "Marc", "Build Android", now.Add(-2*time.Hour)),
	}))

	m = update(t, m, keyMsg("/"))
	if m.focus != FocusSearch {
		t.Fatal("pressing / should focus the search input")
	}

	m = update(t, m, keyMsg("govwin"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.focus != FocusTable {
		t.Fatal("enter should return focus to the table")
	}
	if m.searchQuery != "govwin" {
		t.Fatalf("searchQuery = %q, want %q", m.searchQuery, "govwin")
	}
	if len(m.visible) != 1 || m.visible[0].ID != "a" {
		t.Fatalf("search shows %d sessions, want only the GovWin one", len(m.visible))
	}

	// Esc on the table clears an applied search before quitting
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searchQuery != "" {
		t.Fatalf("searchQuery = %q after esc, want empty", m.searchQuery)
	}
	if len(m.visible) != 2 {
		t.Fatalf("cleared search shows %d sessions, want 2", len(m.visible))
	}
}

func TestDashboardSelectionStaysInBounds(t *testing.T) {
	m := newTestDashboard(true)
	now := time.Now()

	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("a", "Alice", "Revue GovWin", now.Add(-time.Hour)),
		dashSession("b", "Marc", "Build Android", now.Add(-2*time.Hour)),
	}))

	m = update(t, m, keyMsg("j"))
	if m.selected != 1 {
		t.Fatalf("selected = %d after moving down, want 1", m.selected)
	}
	m = update(t, m, keyMsg("j"))
	if m.selected != 1 {
		t.Fatalf("selected = %d at the bottom, want to stay at 1", m.selected)
	}

	// Shrinking snapshot pulls the selection back in range
	m = update(t, m, snapshotMsg([]models.Session{
		dashSession("a", "Alice", "Revue GovWin", now.Add(-time.Hour)),
	}))
	if m.selected != 0 {
		t.Fatalf("selected = %d after snapshot shrank, want 0", m.selected)
	}
}
