package domain

import "time"

// Idempotency records the outcome of a create request keyed by
// (scope, key), where scope is the route plus its path parameters. A replay
// within the TTL is answered by redirecting to Location without writing again.
type Idempotency struct {
	ID        string    `bson:"_id"        gorm:"type:TEXT NOT NULL;primaryKey"`
	Scope     string    `bson:"scope"      gorm:"type:TEXT NOT NULL;uniqueIndex:ux_scope_key,priority:1"`
	Key       string    `bson:"key"        gorm:"type:TEXT NOT NULL;uniqueIndex:ux_scope_key,priority:2"`
	Location  string    `bson:"location"   gorm:"type:TEXT NOT NULL"`
	Status    int       `bson:"status"     gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `bson:"created_at" gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `bson:"expires_at" gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
