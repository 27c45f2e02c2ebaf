// Package snapshot persists per-turn game snapshots as zstd-compressed
// JSON files, one directory per game.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version  int    `json:"version"`
	GameID   string `json:"game_id"`
	Turn     int    `json:"turn"`
	GameOver bool   `json:"game_over"`
	Victory  bool   `json:"victory"`
}

const headerVersion = 1

type Store struct {
	Dir string
}

func NewStore(dir string) Store {
	return Store{Dir: dir}
}

func (s Store) path(gameID string, turn int) string {
	return filepath.Join(s.Dir, gameID, fmt.Sprintf("turn_%06d.json.zst", turn))
}

func (s Store) Save(record ports.SnapshotRecord) error {
	path := s.path(record.GameID, record.Turn)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriter(enc)
	defer bw.Flush()

	header := Header{
		Version:  headerVersion,
		GameID:   record.GameID,
		Turn:     record.Turn,
		GameOver: record.GameOver,
		Victory:  record.Victory,
	}
	hb, _ := json.Marshal(header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(record.Snapshot); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func (s Store) Load(gameID string, turn int) (game.Snapshot, Header, error) {
	var snap game.Snapshot
	var header Header

	f, err := os.Open(s.path(gameID, turn))
	if err != nil {
		return snap, header, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, header, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, header, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &header); err != nil {
		return snap, header, fmt.Errorf("decode header: %w", err)
	}
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, header, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, header, nil
}

// LatestTurn scans the game's directory for the highest saved turn.
func (s Store) LatestTurn(gameID string) (int, error) {
	entries, err := os.ReadDir(filepath.Join(s.Dir, gameID))
	if err != nil {
		return 0, err
	}
	turns := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "turn_") || !strings.HasSuffix(name, ".json.zst") {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, "turn_"), ".json.zst")
		turn, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	if len(turns) == 0 {
		return 0, ports.ErrNotFound
	}
	sort.Ints(turns)
	return turns[len(turns)-1], nil
}
