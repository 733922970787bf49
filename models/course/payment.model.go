package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending   = "PENDING"
	PaymentCaptured  = "CAPTURED"
	PaymentCancelled = "CANCELLED"
	PaymentExpired   = "EXPIRED"
)

// PaymentSession mirrors one checkout with the external gateway. A
// priced enrollment must present the reference of a CAPTURED session.
type PaymentSession struct {
	gorm.Model
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	CourseID  uint       `json:"course_id" gorm:"index;not null"`
	Amount    float64    `json:"amount" gorm:"not null"`
	Reference string     `json:"reference" gorm:"unique;not null"`
	Status    string     `json:"status" gorm:"default:'PENDING'"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsDeleted bool       `gorm:"default:false"`
}
