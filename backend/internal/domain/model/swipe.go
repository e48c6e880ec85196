package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/datemarket/app/backend/internal/domain/enums"
)

type Swipe struct {
	ActorUserID  uuid.UUID            `json:"actor_user_id"`
	TargetUserID uuid.UUID            `json:"target_user_id"`
	Direction    enums.SwipeDirection `json:"direction"`
	IsSuperLike  bool                 `json:"is_super_like"`
	CreatedAt    time.Time            `json:"created_at"`
}
