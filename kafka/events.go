package kafka

import "time"

// ProductEvent describes a change to a catalog product
type ProductEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name"`
	CategoryID uint      `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated = "catalog.product.created"
	EventTypeProductUpdated = "catalog.product.updated"
	EventTypeProductDeleted = "catalog.product.deleted"
)

// Kafka topics
const (
	TopicCatalogProducts = "catalog-products"
)
