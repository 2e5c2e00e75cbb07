package models

import "time"

// Reward is one entry in the fixed reward list (the rewards-track economy).
type Reward struct {
	ID          int64
	Name        string
	Description string
}

// Redemption records a reward granted to a player. The redemption code is
// shown to the player for pickup at the front desk.
type Redemption struct {
	ID             int64
	PlayerID       string
	RewardID       int64
	RedemptionCode string
	CreatedAt      time.Time
}
