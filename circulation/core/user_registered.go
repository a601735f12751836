package core

import (
	"time"
)

// UserRegisteredEventType is the event type identifier.
const UserRegisteredEventType = "UserRegistered"

// UserRegistered represents when a user is registered with the library.
type UserRegistered struct {
	UserID     UserIDString
	Name       string
	Role       string
	OccurredAt OccurredAt
}

// BuildUserRegistered creates a new UserRegistered event.
func BuildUserRegistered(
	userID UserIDString,
	name string,
	role string,
	occurredAt time.Time,
) UserRegistered {

	return UserRegistered{
		UserID:     userID,
		Name:       name,
		Role:       role,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e UserRegistered) IsEventType() string {
	return UserRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRegistered) IsErrorEvent() bool {
	return false
}
