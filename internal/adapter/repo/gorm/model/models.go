// Package model holds the table mappings for the persistence schema.
package model

import "time"

type Game struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	GameID    string    `gorm:"uniqueIndex;size:64;not null"`
	Width     int32     `gorm:"not null"`
	Height    int32     `gorm:"not null"`
	Seed      int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Game) TableName() string { return "games" }

type GameSnapshot struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	GameID   string    `gorm:"index:idx_snapshots_game_turn,unique;size:64;not null"`
	Turn     int32     `gorm:"index:idx_snapshots_game_turn,unique;not null"`
	GameOver bool      `gorm:"not null"`
	Victory  bool      `gorm:"not null"`
	Payload  []byte    `gorm:"type:jsonb;not null"`
	SavedAt  time.Time `gorm:"not null"`
}

func (GameSnapshot) TableName() string { return "game_snapshots" }

type TurnEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	GameID     string    `gorm:"index;size:64;not null"`
	Turn       int32     `gorm:"not null"`
	Kind       string    `gorm:"size:32;not null"`
	Payload    []byte    `gorm:"type:jsonb"`
	OccurredAt time.Time `gorm:"index;not null"`
}

func (TurnEvent) TableName() string { return "turn_events" }
