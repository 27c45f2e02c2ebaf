package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"terraverse/internal/adapter/repo/gorm/model"
	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return GameRepo{db: db}
}

func (r GameRepo) CreateGame(ctx context.Context, record ports.GameRecord) error {
	row := model.Game{
		GameID:    record.GameID,
		Width:     int32(record.Width),
		Height:    int32(record.Height),
		Seed:      record.Seed,
		CreatedAt: record.CreatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

// SaveSnapshot upserts on (game_id, turn): replaying the same turn
// overwrites the previous snapshot instead of stacking rows.
func (r GameRepo) SaveSnapshot(ctx context.Context, record ports.SnapshotRecord) error {
	payload, err := json.Marshal(record.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	row := model.GameSnapshot{
		GameID:   record.GameID,
		Turn:     int32(record.Turn),
		GameOver: record.GameOver,
		Victory:  record.Victory,
		Payload:  payload,
		SavedAt:  record.SavedAt,
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "turn"}},
			DoUpdates: clause.AssignmentColumns([]string{"game_over", "victory", "payload", "saved_at"}),
		}).
		Create(&row).Error
}

func (r GameRepo) LatestSnapshot(ctx context.Context, gameID string) (ports.SnapshotRecord, error) {
	var row model.GameSnapshot
	err := getDBFromCtx(ctx, r.db).
		Where("game_id = ?", gameID).
		Order("turn DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SnapshotRecord{}, ports.ErrNotFound
		}
		return ports.SnapshotRecord{}, err
	}

	var snapshot game.Snapshot
	if err := json.Unmarshal(row.Payload, &snapshot); err != nil {
		return ports.SnapshotRecord{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return ports.SnapshotRecord{
		GameID:   row.GameID,
		Turn:     int(row.Turn),
		GameOver: row.GameOver,
		Victory:  row.Victory,
		Snapshot: snapshot,
		SavedAt:  row.SavedAt,
	}, nil
}
