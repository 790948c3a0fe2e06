package db

import (
	"errors"
	"testing"
	"time"

	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/models"
)

// testStore opens an in-memory store with a controllable clock
func testStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	now := time.Date(2024, 12, 9, 9, 0, 0, 0, time.UTC)
	store, err := Open(Options{
		Path:     ":memory:",
		Timezone: time.UTC,
		Now:      func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, &now
}

func createSession(t *testing.T, store *Store, userID, task string) *models.Session {
	t.Helper()
	session, err := store.CreateSession(ledger.CreateSessionRequest{
		UserID:   userID,
		UserName: userID,
		Task:     task,
	})
	if err != nil {
		t.Fatalf("failed to create session for %s: %v", userID, err)
	}
	return session
}

func TestCreateSessionAssignsAuthoritativeFields(t *testing.T) {
	store, now := testStore(t)

	session, err := store.CreateSession(ledger.CreateSessionRequest{
		UserID:    "alice",
		UserName:  "Alice Dupont",
		UserEmail: "alice@tride.test",
		Task:      "Build Android",
		Tags:      []string{"mobile", "release"},
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if session.ID == "" {
		t.Error("expected store-assigned id")
	}
	if !session.StartedAt.Equal(*now) {
		t.Errorf("expected store clock start %v, got %v", *now, session.StartedAt)
	}
	if session.DateKey != "2024-12-09" {
		t.Errorf("expected date key 2024-12-09, got %s", session.DateKey)
	}
	if !session.Open() {
		t.Error("new session must be open")
	}
	if !session.HasTag("mobile") || !session.HasTag("release") {
		t.Errorf("expected tags attached, got %v", session.TagNames())
	}
}

func TestCreateSessionEnforcesOneOpenPerUser(t *testing.T) {
	store, _ := testStore(t)

	createSession(t, store, "alice", "Build Android")

	_, err := store.CreateSession(ledger.CreateSessionRequest{UserID: "alice", Task: "Second task"})
	if !errors.Is(err, ledger.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}

	// Independent users are unaffected
	createSession(t, store, "bob", "Review rules")

	// After check-out the user can check in again
	active, err := store.ActiveSession("alice")
	if err != nil || active == nil {
		t.Fatalf("expected active session for alice, got %v (err %v)", active, err)
	}
	if _, err := store.CloseSession(active.ID, "done"); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}
	createSession(t, store, "alice", "Next task")
}

func TestCloseSessionSetsEndOnce(t *testing.T) {
	store, now := testStore(t)

	session := createSession(t, store, "alice", "Build Android")
	*now = now.Add(65 * time.Second)

	closed, err := store.CloseSession(session.ID, "Fixed build")
	if err != nil {
		t.Fatalf("failed to close session: %v", err)
	}
	if closed.EndedAt == nil || !closed.EndedAt.Equal(*now) {
		t.Errorf("expected end %v, got %v", *now, closed.EndedAt)
	}
	if closed.Summary != "Fixed build" {
		t.Errorf("expected summary set, got %q", closed.Summary)
	}

	if _, err := store.CloseSession(session.ID, "again"); !errors.Is(err, ledger.ErrNotActive) {
		t.Errorf("expected ErrNotActive on double close, got %v", err)
	}
	if _, err := store.CloseSession("no-such-id", ""); !errors.Is(err, ledger.ErrNotActive) {
		t.Errorf("expected ErrNotActive for unknown session, got %v", err)
	}
}

func TestAppendNoteOnlyWhileOpen(t *testing.T) {
	store, now := testStore(t)

	session := createSession(t, store, "alice", "Build Android")
	note := &models.Note{Author: "alice", Text: "see https://x.test", Links: []string{"https://x.test"}}
	if err := store.AppendNote(session.ID, note); err != nil {
		t.Fatalf("failed to append note: %v", err)
	}
	if !note.CreatedAt.Equal(*now) {
		t.Errorf("expected store clock on note, got %v", note.CreatedAt)
	}

	reloaded, err := store.SessionByID(session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if len(reloaded.Notes) != 1 || reloaded.Notes[0].Text != "see https://x.test" {
		t.Fatalf("expected persisted note, got %+v", reloaded.Notes)
	}
	if len(reloaded.Notes[0].Links) != 1 || reloaded.Notes[0].Links[0] != "https://x.test" {
		t.Errorf("expected links round-tripped through the json serializer, got %v", reloaded.Notes[0].Links)
	}

	if _, err := store.CloseSession(session.ID, ""); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}
	err = store.AppendNote(session.ID, &models.Note{Text: "too late"})
	if !errors.Is(err, ledger.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed after close, got %v", err)
	}
}

func TestAddTagIsIdempotentInStore(t *testing.T) {
	store, _ := testStore(t)

	session := createSession(t, store, "alice", "Revue GovWin")
	if err := store.AddTag(session.ID, "govwin"); err != nil {
		t.Fatalf("failed to add tag: %v", err)
	}
	if err := store.AddTag(session.ID, "govwin"); err != nil {
		t.Fatalf("duplicate tag add must be a no-op, got %v", err)
	}

	reloaded, err := store.SessionByID(session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if len(reloaded.Tags) != 1 {
		t.Errorf("expected 1 tag, got %v", reloaded.TagNames())
	}
}

func TestSessionsInWindowBounds(t *testing.T) {
	store, now := testStore(t)
	base := *now

	createSession(t, store, "alice", "First")
	active, _ := store.ActiveSession("alice")
	store.CloseSession(active.ID, "")

	*now = base.Add(2 * time.Hour)
	createSession(t, store, "alice", "Second")

	sessions, err := store.SessionsInWindow(base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("window query failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Task != "First" {
		t.Errorf("expected only the first session in window, got %+v", sessions)
	}
}

func TestSubscribeDeliversFullSnapshots(t *testing.T) {
	store, _ := testStore(t)

	var snapshots [][]models.Session
	cancel, err := store.Subscribe(Query{DateKey: "2024-12-09"}, func(sessions []models.Session) {
		snapshots = append(snapshots, sessions)
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	if len(snapshots) != 1 || len(snapshots[0]) != 0 {
		t.Fatalf("expected an immediate empty snapshot, got %v", snapshots)
	}

	session := createSession(t, store, "alice", "Build Android")
	if len(snapshots) != 2 || len(snapshots[1]) != 1 {
		t.Fatalf("expected snapshot after check-in, got %d snapshots", len(snapshots))
	}

	if _, err := store.CloseSession(session.ID, "done"); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}
	last := snapshots[len(snapshots)-1]
	if len(last) != 1 || last[0].Open() {
		t.Errorf("expected closed session in final snapshot, got %+v", last)
	}

	cancel()
	count := len(snapshots)
	createSession(t, store, "bob", "After cancel")
	if len(snapshots) != count {
		t.Error("expected no snapshots after cancel")
	}
}

func TestSubscribeDateKeyScoping(t *testing.T) {
	store, _ := testStore(t)

	var otherDay []models.Session
	cancel, err := store.Subscribe(Query{DateKey: "2024-12-08"}, func(sessions []models.Session) {
		otherDay = sessions
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	createSession(t, store, "alice", "Today's work")
	if len(otherDay) != 0 {
		t.Errorf("expected no sessions for another day, got %+v", otherDay)
	}
}
