package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/teamhive/teamhive-backend/internal/repository"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron      *cron.Cron
	tokenRepo repository.TokenRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(tokenRepo repository.TokenRepository) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		tokenRepo: tokenRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at midnight - purge expired tokens
	s.cron.AddFunc("0 0 * * *", func() {
		log.Println("[Cron] Running expired token cleanup...")
		s.purgeExpiredTokens()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ [Cron] Failed to purge expired tokens: %v", err)
		return
	}
	if count > 0 {
		log.Printf("✅ [Cron] Purged %d expired tokens", count)
	}
}
