package utils

import (
	"log"

	"lms/database"
	"lms/services"

	"github.com/robfig/cron/v3"
)

// InitializePaymentScheduler starts the hourly sweep that voids payment
// sessions left PENDING past their expiry.
func InitializePaymentScheduler() *cron.Cron {
	log.Println("[PAYMENT-SCHEDULER] Initializing payment session scheduler...")

	c := cron.New()

	// Run hourly; sessions expire on the order of an hour
	c.AddFunc("@hourly", func() {
		svc := services.NewPaymentService(database.Database.Db, NewGatewayClient())
		expired := svc.ExpireStaleSessions()
		if expired > 0 {
			log.Printf("[PAYMENT-SCHEDULER] Expired %d stale payment sessions", expired)
		}
	})

	c.Start()
	log.Println("[PAYMENT-SCHEDULER] Payment session scheduler started - runs hourly")

	return c
}
