package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordGameCreated()
	r.RecordAction("explore", true)
	r.RecordAction("explore", true)
	r.RecordAction("expand", false)
	r.RecordTurnAdvanced(false)
	r.RecordTurnAdvanced(true)

	s := r.Snapshot()
	if s.GamesCreated != 1 {
		t.Fatalf("expected 1 game created, got %d", s.GamesCreated)
	}
	if s.ActionTotal != 3 || s.ActionSuccess != 2 || s.ActionFailure != 1 {
		t.Fatalf("action counts = %d/%d/%d", s.ActionTotal, s.ActionSuccess, s.ActionFailure)
	}
	if s.ByActionKind["explore"] != 2 || s.ByActionKind["expand"] != 1 {
		t.Fatalf("by kind = %+v", s.ByActionKind)
	}
	if s.TurnsAdvanced != 2 || s.GamesFinished != 1 {
		t.Fatalf("turns = %d finished = %d", s.TurnsAdvanced, s.GamesFinished)
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordAction("build", true)

	s := r.Snapshot()
	s.ByActionKind["build"] = 99

	if r.Snapshot().ByActionKind["build"] != 1 {
		t.Fatal("snapshot map aliases recorder state")
	}
}
