package model

import "time"

// Lifecycle is the shared soft-delete capability: every entity is flagged and
// timestamped instead of being physically removed. Restore re-stamps the
// timestamp rather than clearing it.
type Lifecycle struct {
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// MarkDeleted flags the entity as deleted. Re-deleting is idempotent and
// simply re-stamps the timestamp.
func (l *Lifecycle) MarkDeleted(now time.Time) {
	l.IsDeleted = true
	l.DeletedAt = &now
}

// Restore reverses a soft delete.
func (l *Lifecycle) Restore(now time.Time) {
	l.IsDeleted = false
	l.DeletedAt = &now
}
