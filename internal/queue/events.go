package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types for the account stream
const (
	EventUserRegistered = "user_registered"
	EventUserDeleted    = "user_deleted"
	EventUserFollowed   = "user_followed"
	EventUserUnfollowed = "user_unfollowed"
)

// StreamAccounts carries account and follow-graph changes for downstream
// consumers.
const StreamAccounts = "stream:accounts"

// Event is a single account or follow-graph change.
type Event struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	// Account events (UserRegistered, UserDeleted)
	UserID string `json:"user_id,omitempty"`

	// Follow events (UserFollowed, UserUnfollowed)
	FollowerID string `json:"follower_id,omitempty"`
	FollowedID string `json:"followed_id,omitempty"`
}

func NewUserRegisteredEvent(userID uuid.UUID) Event {
	return Event{Type: EventUserRegistered, Timestamp: time.Now().Unix(), UserID: userID.String()}
}

func NewUserDeletedEvent(userID uuid.UUID) Event {
	return Event{Type: EventUserDeleted, Timestamp: time.Now().Unix(), UserID: userID.String()}
}

func NewUserFollowedEvent(followerID, followedID uuid.UUID) Event {
	return Event{
		Type:       EventUserFollowed,
		Timestamp:  time.Now().Unix(),
		FollowerID: followerID.String(),
		FollowedID: followedID.String(),
	}
}

func NewUserUnfollowedEvent(followerID, followedID uuid.UUID) Event {
	return Event{
		Type:       EventUserUnfollowed,
		Timestamp:  time.Now().Unix(),
		FollowerID: followerID.String(),
		FollowedID: followedID.String(),
	}
}

// ToMap converts the event to field-value pairs for XADD. The full event is
// JSON encoded under "data".
func (e Event) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseEvent parses an Event from Redis stream message values.
func ParseEvent(values map[string]interface{}) (Event, error) {
	data, ok := values["data"].(string)
	if !ok {
		return Event{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
