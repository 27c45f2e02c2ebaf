package gormrepo

import (
	"context"
	"encoding/json"

	"terraverse/internal/adapter/repo/gorm/model"
	"terraverse/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, gameID string, events []ports.TurnEventRecord) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.TurnEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.TurnEvent{
			GameID:     gameID,
			Turn:       int32(e.Turn),
			Kind:       e.Kind,
			Payload:    b,
			OccurredAt: e.OccurredAt,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByGameID(ctx context.Context, gameID string, limit int) ([]ports.TurnEventRecord, error) {
	rows := []model.TurnEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.TurnEvent{GameID: gameID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "turn"}},
				{Column: clause.Column{Name: "id"}},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.TurnEventRecord, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, ports.TurnEventRecord{
			GameID:     row.GameID,
			Turn:       int(row.Turn),
			Kind:       row.Kind,
			Payload:    payload,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
