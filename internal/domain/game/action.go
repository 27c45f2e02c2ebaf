package game

import (
	"strings"

	"terraverse/internal/domain/world"
)

type ActionKind string

const (
	ActionExplore  ActionKind = "explore"
	ActionExpand   ActionKind = "expand"
	ActionExploit  ActionKind = "exploit"
	ActionBuild    ActionKind = "build"
	ActionResearch ActionKind = "research"
	ActionMigrate  ActionKind = "migrate"

	// ActionExterminate is part of the closed kind set but has no
	// implementation; it parses and then reports unsupported.
	ActionExterminate ActionKind = "exterminate"
)

// APCost is the fixed action point price per kind.
func (k ActionKind) APCost() int {
	switch k {
	case ActionExplore, ActionExploit, ActionMigrate:
		return 1
	case ActionExpand, ActionBuild:
		return 2
	case ActionResearch:
		return 3
	default:
		return 0
	}
}

// ParseActionKind resolves a wire action type, case-insensitively.
func ParseActionKind(s string) (ActionKind, bool) {
	switch ActionKind(strings.ToLower(strings.TrimSpace(s))) {
	case ActionExplore:
		return ActionExplore, true
	case ActionExpand:
		return ActionExpand, true
	case ActionExploit:
		return ActionExploit, true
	case ActionBuild:
		return ActionBuild, true
	case ActionResearch:
		return ActionResearch, true
	case ActionMigrate:
		return ActionMigrate, true
	case ActionExterminate:
		return ActionExterminate, true
	default:
		return "", false
	}
}

// Payload is the untrusted external shape of one submitted action.
type Payload struct {
	ActionType   string         `json:"action_type"`
	TargetX      *int           `json:"target_x,omitempty"`
	TargetY      *int           `json:"target_y,omitempty"`
	BuildingType string         `json:"building_type,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
}

// action is the validated internal command: kinds resolved against the
// closed enums, coordinates still optional (per-kind rules check them).
type action struct {
	kind        ActionKind
	targetX     *int
	targetY     *int
	building    world.Building
	hasBuilding bool
}

// parsePayload rejects unknown action and building kinds up front so raw
// strings never travel further into the engine.
func parsePayload(p Payload) (action, bool) {
	kind, ok := ParseActionKind(p.ActionType)
	if !ok {
		return action{}, false
	}
	a := action{kind: kind, targetX: p.TargetX, targetY: p.TargetY}
	if p.BuildingType != "" {
		building, ok := world.ParseBuilding(strings.ToLower(strings.TrimSpace(p.BuildingType)))
		if !ok {
			return action{}, false
		}
		a.building = building
		a.hasBuilding = true
	}
	return a, true
}
