// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpiryScheduler closes job postings whose deadline has passed.
func (s *JobService) StartExpiryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 10 minutes: expire stale postings
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			if _, err := s.ExpirePastDeadline(time.Now().UTC()); err != nil {
				log.Printf("[Scheduler] Failed to expire postings: %v", err)
			}
		}),
	)
}
