package main

import (
	"context"
	"flag"
	"log"
	"time"

	httpadapter "terraverse/internal/adapter/http"
	"terraverse/internal/adapter/indexdb"
	metricsinmem "terraverse/internal/adapter/metrics/inmemory"
	registryinmem "terraverse/internal/adapter/registry/inmemory"
	gormrepo "terraverse/internal/adapter/repo/gorm"
	memrepo "terraverse/internal/adapter/repo/memory"
	snapshotstore "terraverse/internal/adapter/snapshot"
	"terraverse/internal/app/act"
	"terraverse/internal/app/advance"
	"terraverse/internal/app/create"
	"terraverse/internal/app/observe"
	"terraverse/internal/app/ports"
	"terraverse/internal/app/replay"
	"terraverse/internal/app/score"
	"terraverse/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	gameRepo, eventRepo, txManager := mustBuildRepos(cfg)
	if cfg.Snapshots.Dir != "" {
		gameRepo = withFileSnapshots(gameRepo, snapshotstore.NewStore(cfg.Snapshots.Dir))
	}
	results := buildResultsIndex(cfg)

	registry := registryinmem.NewRegistry()
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		CreateUC: create.UseCase{
			Games:         registry,
			Repo:          gameRepo,
			Metrics:       kpiRecorder,
			Now:           time.Now,
			DefaultWidth:  cfg.Game.DefaultWidth,
			DefaultHeight: cfg.Game.DefaultHeight,
		},
		ObserveUC: observe.UseCase{Games: registry},
		ActUC: act.UseCase{
			Games:   registry,
			Events:  eventRepo,
			Repo:    gameRepo,
			Tx:      txManager,
			Metrics: kpiRecorder,
			Now:     time.Now,
		},
		AdvanceUC: advance.UseCase{
			Games:   registry,
			Repo:    gameRepo,
			Events:  eventRepo,
			Tx:      txManager,
			Results: results,
			Metrics: kpiRecorder,
			Now:     time.Now,
		},
		ScoreUC:  score.UseCase{Games: registry},
		ReplayUC: replay.UseCase{Events: eventRepo},
		KPI:      kpiRecorder,
		Results:  results,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	log.Printf("terraverse server listening on %s", cfg.Server.Addr)
	s.Spin()
}

func mustBuildRepos(cfg config.Config) (ports.GameRepository, ports.EventRepository, ports.TxManager) {
	if cfg.Database.DSN == "" {
		log.Println("no database configured, using in-memory repositories")
		store := memrepo.NewStore()
		return memrepo.NewGameRepo(store), memrepo.NewEventRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if cfg.Database.MigrationsDir != "" {
		if err := gormrepo.ApplyMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	} else if cfg.Database.AutoMigrate {
		if err := gormrepo.AutoMigrate(ctx, db); err != nil {
			log.Fatalf("auto migrate: %v", err)
		}
	}
	return gormrepo.NewGameRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func buildResultsIndex(cfg config.Config) ports.ResultsIndex {
	if cfg.Results.Path == "" {
		return nil
	}
	idx, err := indexdb.OpenSQLite(cfg.Results.Path)
	if err != nil {
		log.Fatalf("open results index: %v", err)
	}
	return idx
}

// snapshotFanout mirrors every snapshot save into the compressed file
// store while the wrapped repository stays authoritative for reads.
type snapshotFanout struct {
	ports.GameRepository
	files snapshotstore.Store
}

func withFileSnapshots(repo ports.GameRepository, files snapshotstore.Store) ports.GameRepository {
	return snapshotFanout{GameRepository: repo, files: files}
}

func (f snapshotFanout) SaveSnapshot(ctx context.Context, record ports.SnapshotRecord) error {
	if err := f.files.Save(record); err != nil {
		log.Printf("snapshot file save failed for %s turn %d: %v", record.GameID, record.Turn, err)
	}
	return f.GameRepository.SaveSnapshot(ctx, record)
}
