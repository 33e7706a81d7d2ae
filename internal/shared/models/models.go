package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInput is the body of create and update requests. Age is nullable so a
// client can forward an age it could not parse and leave validation to the server.
type UserInput struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age"   validate:"required,min=0,max=150"`
}

type UserEventType string

const (
	UserEventCreate UserEventType = "CREATE"
	UserEventDelete UserEventType = "DELETE"
)

type UserEvent struct {
	ID         string        `json:"event_id"`
	Type       UserEventType `json:"event_type"`
	Email      string        `json:"email"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
