package main

import (
	"context"
	"errors"
	"testing"

	memrepo "terraverse/internal/adapter/repo/memory"
	snapshotstore "terraverse/internal/adapter/snapshot"
	"terraverse/internal/app/ports"
	"terraverse/internal/config"
	"terraverse/internal/domain/game"
)

func TestSnapshotFanoutWritesBothStores(t *testing.T) {
	store := memrepo.NewStore()
	files := snapshotstore.NewStore(t.TempDir())
	repo := withFileSnapshots(memrepo.NewGameRepo(store), files)

	state := game.New(5, 5, 42)
	err := repo.SaveSnapshot(context.Background(), ports.SnapshotRecord{
		GameID:   "g1",
		Turn:     1,
		Snapshot: state.Snapshot(),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := repo.LatestSnapshot(context.Background(), "g1"); err != nil {
		t.Fatalf("latest from wrapped repo: %v", err)
	}
	if _, _, err := files.Load("g1", 1); err != nil {
		t.Fatalf("load from file store: %v", err)
	}
}

func TestSnapshotFanoutSurvivesFileFailure(t *testing.T) {
	store := memrepo.NewStore()
	// A file path as the directory makes every file save fail.
	files := snapshotstore.NewStore("/dev/null/not-a-dir")
	repo := withFileSnapshots(memrepo.NewGameRepo(store), files)

	state := game.New(5, 5, 42)
	err := repo.SaveSnapshot(context.Background(), ports.SnapshotRecord{
		GameID:   "g1",
		Turn:     1,
		Snapshot: state.Snapshot(),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.LatestSnapshot(context.Background(), "g1"); errors.Is(err, ports.ErrNotFound) {
		t.Fatal("wrapped repo missed the snapshot")
	}
}

func TestMustBuildReposWithoutDatabase(t *testing.T) {
	cfg := config.Default()
	gameRepo, eventRepo, txManager := mustBuildRepos(cfg)
	if gameRepo == nil || eventRepo == nil || txManager == nil {
		t.Fatal("expected in-memory repositories")
	}
	if err := eventRepo.Append(context.Background(), "g1", []ports.TurnEventRecord{{GameID: "g1", Turn: 1, Kind: "explore"}}); err != nil {
		t.Fatalf("append: %v", err)
	}
}
