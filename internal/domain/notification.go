package domain

// Notification is an outbound message about an order, delivered by email or push.
type Notification struct {
	ActorID    int64             `json:"actor_id"`
	Email      string            `json:"email"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes"`
}
