package model

import (
	"time"

	"github.com/google/uuid"
)

// Match is stored once per unordered pair with UserAID ordered before UserBID.
type Match struct {
	ID        int64     `json:"id"`
	UserAID   uuid.UUID `json:"user_a_id"`
	UserBID   uuid.UUID `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m Match) Counterpart(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case m.UserAID:
		return m.UserBID, true
	case m.UserBID:
		return m.UserAID, true
	default:
		return uuid.Nil, false
	}
}
