package game

type EventKind string

const (
	EventDrought   EventKind = "drought"
	EventPlague    EventKind = "plague"
	EventHarvest   EventKind = "harvest"
	EventDiscovery EventKind = "discovery"
)

// Event is a timed occurrence. Harvest and discovery apply their ledger
// effect once, at trigger time; drought and plague are tracked for their
// duration but carry no per-turn mechanical reapplication (see DESIGN.md,
// preserved from the reference behavior).
type Event struct {
	Kind        EventKind `json:"type"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
}

type eventTemplate struct {
	kind        EventKind
	description string
}

// eventCatalog is the fixed random-event pool, drawn uniformly.
var eventCatalog = []eventTemplate{
	{EventDrought, "a drought cut food production"},
	{EventHarvest, "a bountiful harvest boosted the food stores"},
	{EventDiscovery, "a new ore vein was discovered"},
	{EventPlague, "a plague thinned the population"},
}
