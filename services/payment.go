package services

import (
	"errors"
	"log"
	"time"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentGateway is the external payment collaborator. Authorize opens a
// checkout, Capture commits it, Cancel voids it. The HTTP client lives
// in utils; tests plug in a stub.
type PaymentGateway interface {
	Authorize(reference string, amount float64) error
	Capture(reference string) error
	Cancel(reference string) error
}

// PaymentService manages the checkout sessions consumed by Enroll
type PaymentService struct {
	db      *gorm.DB
	gateway PaymentGateway
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway) *PaymentService {
	return &PaymentService{db: db, gateway: gateway}
}

// CreateSession opens a gateway checkout for a priced, published course
// the user is not yet enrolled in, and persists it as PENDING.
func (s *PaymentService) CreateSession(userID, courseID uint) (*courseModels.PaymentSession, error) {
	var course courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !course.IsPublished {
		return nil, models.ErrUnavailable
	}

	// Free courses enroll directly; a session makes no sense
	if course.Price <= 0 {
		return nil, models.ErrInvalidInput
	}

	var enrolled int64
	s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&enrolled)
	if enrolled > 0 {
		return nil, models.ErrConflict
	}

	reference := uuid.NewString()
	if err := s.gateway.Authorize(reference, course.Price); err != nil {
		log.Printf("Payment gateway authorize failed for course %d: %v", courseID, err)
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(config.AppConfig.PaymentSessionTTL) * time.Minute)
	session := courseModels.PaymentSession{
		UserID:    userID,
		CourseID:  courseID,
		Amount:    course.Price,
		Reference: reference,
		Status:    courseModels.PaymentPending,
		ExpiresAt: &expiresAt,
	}

	if err := s.db.Create(&session).Error; err != nil {
		log.Printf("Error saving payment session %s: %v", reference, err)
		return nil, err
	}

	return &session, nil
}

// ConfirmSession captures a pending session at the gateway and marks it
// CAPTURED, making it usable as proof of payment for Enroll.
func (s *PaymentService) ConfirmSession(userID uint, reference string) (*courseModels.PaymentSession, error) {
	var session courseModels.PaymentSession
	err := s.db.Where("reference = ? AND user_id = ? AND is_deleted = ?", reference, userID, false).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if session.Status != courseModels.PaymentPending {
		return nil, models.ErrUnavailable
	}

	if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now()) {
		// Too late to capture; void it at the gateway as well
		if err := s.gateway.Cancel(session.Reference); err != nil {
			log.Printf("Payment gateway cancel failed for %s: %v", session.Reference, err)
		}
		session.Status = courseModels.PaymentExpired
		s.db.Save(&session)
		return nil, models.ErrUnavailable
	}

	if err := s.gateway.Capture(session.Reference); err != nil {
		log.Printf("Payment gateway capture failed for %s: %v", session.Reference, err)
		return nil, err
	}

	session.Status = courseModels.PaymentCaptured
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ExpireStaleSessions voids pending sessions past their expiry. Invoked
// by the hourly sweeper; returns the number of sessions expired.
func (s *PaymentService) ExpireStaleSessions() int {
	var stale []courseModels.PaymentSession
	err := s.db.Where("status = ? AND is_deleted = ? AND expires_at IS NOT NULL AND expires_at < ?",
		courseModels.PaymentPending, false, time.Now()).Find(&stale).Error
	if err != nil {
		log.Printf("Error fetching stale payment sessions: %v", err)
		return 0
	}

	expired := 0
	for _, session := range stale {
		if err := s.gateway.Cancel(session.Reference); err != nil {
			log.Printf("Payment gateway cancel failed for %s: %v", session.Reference, err)
		}
		session.Status = courseModels.PaymentExpired
		if err := s.db.Save(&session).Error; err != nil {
			log.Printf("Error expiring payment session %s: %v", session.Reference, err)
			continue
		}
		expired++
	}

	return expired
}
