package store

import (
	"strings"
	"time"
)

// Interaction represents the 'interaction_history' table: one answered
// question.
type Interaction struct {
	ID           int64     `db:"id" json:"id"`
	SessionID    string    `db:"session_id" json:"session_id"`
	Question     string    `db:"question" json:"question"`
	Response     string    `db:"response" json:"response"`
	ToolUsed     string    `db:"tool_used" json:"tool_used"`
	Reason       string    `db:"reason" json:"reason"`
	EvidenceKeys string    `db:"evidence_keys" json:"-"`
	DurationMs   int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Evidence splits EvidenceKeys back into "employee_id|competency" keys.
func (i Interaction) Evidence() []string {
	if i.EvidenceKeys == "" {
		return []string{}
	}
	return strings.Split(i.EvidenceKeys, ",")
}

func JoinEvidence(keys []string) string {
	return strings.Join(keys, ",")
}
