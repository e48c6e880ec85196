package dto

import "github.com/google/uuid"

// SwipeRequest accepts either a direction or one of the legacy action names.
type SwipeRequest struct {
	TargetID  uuid.UUID `json:"target_id"`
	Direction string    `json:"direction,omitempty"`
	Action    string    `json:"action,omitempty"`
}

type SuperLikeRequest struct {
	TargetID uuid.UUID `json:"target_id"`
}

type SwipeResponse struct {
	OK      bool `json:"ok"`
	IsMatch bool `json:"is_match"`
}

type RecallResponse struct {
	OK             bool       `json:"ok"`
	Recalled       bool       `json:"recalled"`
	TargetID       *uuid.UUID `json:"target_id,omitempty"`
	MatchDissolved bool       `json:"match_dissolved"`
}

type UserIDsResponse struct {
	Items []uuid.UUID `json:"items"`
}

type UndecidedCandidatesRequest struct {
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

// UndecidedCandidatesResponse carries the swipe cooldown so the client can hold the deck.
type UndecidedCandidatesResponse struct {
	Items         []uuid.UUID `json:"items"`
	RetryAfterSec int64       `json:"retry_after_sec"`
}
