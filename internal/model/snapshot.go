package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CollectionProducts = "products"
	CollectionOrders   = "orders"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes one backup run of the backend collections.
type Snapshot struct {
	ID           uuid.UUID `json:"id"`
	TakenAt      time.Time `json:"taken_at"`
	ProductCount int       `json:"product_count"`
	OrderCount   int       `json:"order_count"`
}
