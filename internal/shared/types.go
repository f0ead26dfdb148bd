package shared

// Asynq task types. Defined here to avoid import cycles between domains and
// the queue wiring.
const (
	TypeAwardBadge     = "user:award_badge"
	TypeReconcileStats = "user:reconcile_stats"
)

// Queue names by priority.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// AwardBadgePayload carries a badge grant for a user.
type AwardBadgePayload struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ReconcileStatsPayload triggers the derived-counter reconciliation job.
type ReconcileStatsPayload struct {
	BatchSize int `json:"batchSize,omitempty"`
}
