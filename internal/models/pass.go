package models

import (
	"time"
)

// TimestampLayout is the format used for redemption timestamps in API
// responses and mail bodies.
const TimestampLayout = "2006-01-02 15:04:05"

// Pass is one single-use QR meal pass. The identifier doubles as the primary
// key and is embedded in the scanned payload. Payload keeps a denormalized
// snapshot of the identity fields at mint time; the row itself stays
// authoritative for redemption state.
type Pass struct {
	ID               string     `gorm:"type:varchar(100);primaryKey" json:"id"`
	SessionName      string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_passes_session_email" json:"session_name"`
	ParticipantEmail string     `gorm:"type:varchar(120);not null;uniqueIndex:idx_passes_session_email" json:"participant_email"`
	IsRedeemed       bool       `gorm:"not null;default:false" json:"is_redeemed"`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	RedeemedAt       *time.Time `json:"redeemed_at"`
	Payload          string     `gorm:"type:text;not null" json:"-"`
}

func (Pass) TableName() string {
	return "passes"
}

// RedeemedAtString formats the redemption timestamp for display; empty while
// the pass is still issued.
func (p *Pass) RedeemedAtString() string {
	if p.RedeemedAt == nil {
		return ""
	}
	return p.RedeemedAt.Format(TimestampLayout)
}
