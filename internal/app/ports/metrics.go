package ports

// ActionMetrics counts game activity for the ops endpoint.
type ActionMetrics interface {
	RecordGameCreated()
	RecordAction(kind string, success bool)
	RecordTurnAdvanced(gameOver bool)
}
