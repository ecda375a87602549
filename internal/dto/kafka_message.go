package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type UserStatusEvent struct {
	UserID   string `json:"user_id"`
	IsActive bool   `json:"is_active"`
}

type ProductStatusEvent struct {
	ProductID   string `json:"product_id"`
	IsAvailable bool   `json:"is_available"`
}

type ProductDeletedEvent struct {
	ProductID string `json:"product_id"`
}

type ProductAddedEvent struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Encoding Encoding `json:"encoding"`
}
