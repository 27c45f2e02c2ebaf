package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"terraverse/internal/app/act"
	"terraverse/internal/app/advance"
	"terraverse/internal/app/create"
	"terraverse/internal/app/observe"
	"terraverse/internal/app/ports"
	"terraverse/internal/app/replay"
	"terraverse/internal/app/score"
	"terraverse/internal/domain/game"
	"terraverse/schemas"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gopkg.in/yaml.v3"
)

type Handler struct {
	CreateUC  create.UseCase
	ObserveUC observe.UseCase
	ActUC     act.UseCase
	AdvanceUC advance.UseCase
	ScoreUC   score.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
	Results   ports.ResultsIndex
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	games := s.Group("/api/games")
	games.POST("", h.create)
	games.GET("/:id/observation", h.observation)
	games.POST("/:id/actions", h.actions)
	games.POST("/:id/turn", h.advanceTurn)
	games.GET("/:id/status", h.status)
	games.GET("/:id/score", h.score)
	games.GET("/:id/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/results", h.results)
}

func (h Handler) create(c context.Context, ctx *app.RequestContext) {
	var body create.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CreateUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) observation(c context.Context, ctx *app.RequestContext) {
	simple, ok := boolQuery(ctx, "simple")
	if !ok {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_query", "simple must be a boolean")
		return
	}
	format := string(ctx.Query("format"))
	if format != "" && format != "json" && format != "yaml" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_query", "format must be json or yaml")
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{GameID: gameID(ctx), Simple: simple})
	if err != nil {
		writeError(ctx, err)
		return
	}

	var payload any
	if resp.Simple != nil {
		payload = resp.Simple
	} else {
		payload = resp.Full
	}
	if format == "yaml" {
		writeYAML(ctx, payload)
		return
	}
	ctx.JSON(consts.StatusOK, payload)
}

func (h Handler) actions(c context.Context, ctx *app.RequestContext) {
	payloads, err := decodeActions(ctx.Request.Body())
	if err != nil {
		var violation *schemaViolationError
		if errors.As(err, &violation) {
			writeErrorBody(ctx, consts.StatusBadRequest, "schema_violation", violation.Error())
			return
		}
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ActUC.Execute(c, act.Request{GameID: gameID(ctx), Actions: payloads})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) advanceTurn(c context.Context, ctx *app.RequestContext) {
	resp, err := h.AdvanceUC.Execute(c, advance.Request{GameID: gameID(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Execute(c, observe.Request{GameID: gameID(ctx), Simple: true})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp.Simple)
}

func (h Handler) score(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScoreUC.Execute(c, score.Request{GameID: gameID(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	turnFrom, _ := strconv.Atoi(string(ctx.Query("turn_from")))
	turnTo, _ := strconv.Atoi(string(ctx.Query("turn_to")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		GameID:   gameID(ctx),
		Limit:    limit,
		TurnFrom: turnFrom,
		TurnTo:   turnTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) results(c context.Context, ctx *app.RequestContext) {
	if h.Results == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "results index not configured")
		return
	}
	limit := 0
	if raw := string(ctx.Query("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_query", "limit must be a non-negative integer")
			return
		}
		limit = v
	}
	results, err := h.Results.TopResults(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resultsResponse{Results: toResultEntries(results)})
}

type resultsResponse struct {
	Results []resultEntry `json:"results"`
}

type resultEntry struct {
	GameID      string  `json:"game_id"`
	TurnsPlayed int     `json:"turns_played"`
	Victory     bool    `json:"victory"`
	TotalScore  float64 `json:"total_score"`
	FinishedAt  string  `json:"finished_at"`
}

func toResultEntries(results []ports.GameResult) []resultEntry {
	out := make([]resultEntry, 0, len(results))
	for _, r := range results {
		out = append(out, resultEntry{
			GameID:      r.GameID,
			TurnsPlayed: r.TurnsPlayed,
			Victory:     r.Victory,
			TotalScore:  r.TotalScore,
			FinishedAt:  r.FinishedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func gameID(ctx *app.RequestContext) string {
	return strings.TrimSpace(ctx.Param("id"))
}

func boolQuery(ctx *app.RequestContext, key string) (value, ok bool) {
	raw := string(ctx.Query(key))
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

type schemaViolationError struct {
	index int
	cause error
}

func (e *schemaViolationError) Error() string {
	return "action " + strconv.Itoa(e.index) + ": " + e.cause.Error()
}

func (e *schemaViolationError) Unwrap() error { return e.cause }

// decodeActions accepts a single action object or a list of them. Every
// element must pass the wire schema before any of them reaches the game.
func decodeActions(body []byte) ([]game.Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	var raws []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, err
		}
	} else {
		raws = []json.RawMessage{trimmed}
	}

	payloads := make([]game.Payload, 0, len(raws))
	for i, raw := range raws {
		var loose any
		if err := json.Unmarshal(raw, &loose); err != nil {
			return nil, err
		}
		if err := schemas.Action().Validate(loose); err != nil {
			return nil, &schemaViolationError{index: i, cause: err}
		}
		var p game.Payload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

// writeYAML round-trips through JSON first so the YAML document carries
// the same field names as the JSON one.
func writeYAML(ctx *app.RequestContext, payload any) {
	jb, err := json.Marshal(payload)
	if err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	var generic any
	if err := json.Unmarshal(jb, &generic); err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	b, err := yaml.Marshal(generic)
	if err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	ctx.Data(consts.StatusOK, "text/yaml; charset=utf-8", b)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, create.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, act.ErrInvalidRequest),
		errors.Is(err, advance.ErrInvalidRequest),
		errors.Is(err, score.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
