package models

import (
	"time"
)

// Endorsement represents one voter's approval of a guide.
// The (GuideID, VoterKey) pair is the identity: at most one row per pair
// exists at any instant, enforced by the composite primary key. The row's
// presence means "this voter currently endorses this guide".
type Endorsement struct {
	GuideID   uint      `gorm:"primaryKey;autoIncrement:false" json:"guideId"`
	VoterKey  string    `gorm:"primaryKey;size:128" json:"voterKey"`
	CreatedAt time.Time `json:"createdAt"`

	Guide Guide `gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE" json:"-"`
}

// VoteResult is the response shape for the endorsement toggle.
// Count and flag reflect the state after the toggle applied, which under
// concurrent toggles from the same voter may include a peer's write.
type VoteResult struct {
	Votes int  `json:"votes"`
	Voted bool `json:"voted"`
}
