//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_Lifecycle(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	var gameID string

	t.Run("create game", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/games", map[string]any{
			"width":  8,
			"height": 8,
		})
		if status != http.StatusCreated {
			t.Fatalf("create status=%d body=%s", status, string(body))
		}
		var created map[string]any
		if err := json.Unmarshal(body, &created); err != nil {
			t.Fatalf("unmarshal create: %v body=%s", err, string(body))
		}
		gameID, _ = created["game_id"].(string)
		if gameID == "" {
			t.Fatalf("missing game_id in %s", string(body))
		}
	})

	t.Run("create rejects bad dimensions", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/games", map[string]any{
			"width":  2,
			"height": 8,
		})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("observe full and simple", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/games/"+gameID+"/observation", nil)
		if err != nil {
			t.Fatalf("observation request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("observation status=%d body=%s", status, string(body))
		}
		var obs map[string]any
		if err := json.Unmarshal(body, &obs); err != nil {
			t.Fatalf("unmarshal observation: %v body=%s", err, string(body))
		}
		game := asMap(obs["game_info"])
		if game["current_turn"] != float64(1) {
			t.Fatalf("expected turn 1, got %v", game["current_turn"])
		}
		if len(asSlice(asMap(obs["available_actions"])["action_types"])) == 0 {
			t.Fatalf("expected action catalog, got %s", string(body))
		}

		status, body, err = doRequest(client, http.MethodGet, baseURL+"/api/games/"+gameID+"/status", nil)
		if err != nil {
			t.Fatalf("status request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status status=%d body=%s", status, string(body))
		}
	})

	t.Run("actions turn score replay", func(t *testing.T) {
		status, actBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/games/"+gameID+"/actions", []any{
			map[string]any{"action_type": "explore", "target_x": 3, "target_y": 4},
			map[string]any{"action_type": "explore", "target_x": 5, "target_y": 4},
		})
		if status != http.StatusOK {
			t.Fatalf("actions status=%d body=%s", status, string(actBody))
		}
		var acted map[string]any
		if err := json.Unmarshal(actBody, &acted); err != nil {
			t.Fatalf("unmarshal actions: %v body=%s", err, string(actBody))
		}
		if len(asSlice(acted["results"])) != 2 {
			t.Fatalf("expected 2 results, got %s", string(actBody))
		}

		status, turnBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/games/"+gameID+"/turn", nil)
		if status != http.StatusOK {
			t.Fatalf("turn status=%d body=%s", status, string(turnBody))
		}
		var advanced map[string]any
		if err := json.Unmarshal(turnBody, &advanced); err != nil {
			t.Fatalf("unmarshal turn: %v body=%s", err, string(turnBody))
		}
		if advanced["turn"] != float64(2) {
			t.Fatalf("expected turn 2, got %s", string(turnBody))
		}

		status, scoreBody, err := doRequest(client, http.MethodGet, baseURL+"/api/games/"+gameID+"/score", nil)
		if err != nil {
			t.Fatalf("score request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("score status=%d body=%s", status, string(scoreBody))
		}
		var scored map[string]any
		if err := json.Unmarshal(scoreBody, &scored); err != nil {
			t.Fatalf("unmarshal score: %v body=%s", err, string(scoreBody))
		}
		if asMap(scored["score"])["total_score"] == nil {
			t.Fatalf("missing total_score in %s", string(scoreBody))
		}

		status, replayBody, err := doRequest(client, http.MethodGet, baseURL+"/api/games/"+gameID+"/replay", nil)
		if err != nil {
			t.Fatalf("replay request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("replay status=%d body=%s", status, string(replayBody))
		}
		var replay map[string]any
		if err := json.Unmarshal(replayBody, &replay); err != nil {
			t.Fatalf("unmarshal replay: %v body=%s", err, string(replayBody))
		}
		if len(asSlice(replay["events"])) == 0 {
			t.Fatalf("expected replay events, got %s", string(replayBody))
		}
	})

	t.Run("yaml observation", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/games/"+gameID+"/observation?format=yaml", nil)
		if err != nil {
			t.Fatalf("yaml request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("yaml status=%d body=%s", status, string(body))
		}
		if !strings.Contains(string(body), "game_info:") {
			t.Fatalf("expected yaml body, got %s", string(body))
		}
	})

	t.Run("unknown game is 404", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/games/no-such-game/observation", nil)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d body=%s", status, string(body))
		}
	})

	t.Run("ops kpi", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var kpi map[string]any
		if err := json.Unmarshal(body, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		var err error
		payloadBytes, err = json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
