package workorder

import "time"

// Installation is the on-site fitting of a finished order
type Installation struct {
	ScheduledDate time.Time  `json:"scheduled_date"`
	TeamName      string     `json:"team_name"`
	Notes         string     `json:"notes"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
