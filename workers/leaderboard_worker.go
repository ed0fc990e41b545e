package workers

import (
	"context"
	"log"
	"time"

	"wellness-rewards-system/services"
)

// PollLeaderboard refreshes the leaderboard snapshot on a fixed interval,
// independently of the midnight maintenance jobs. Each refresh is a batch of
// idempotent per-user upserts, so a failed tick just leaves slightly stale
// ranks until the next one.
func PollLeaderboard(ctx context.Context, svc *services.LeaderboardService, pollInterval time.Duration) {
	log.Println("Starting leaderboard refresh worker...")

	// Initial refresh so the board is populated right after boot.
	if n, err := svc.Refresh(ctx); err != nil {
		log.Printf("[Leaderboard] initial refresh failed: %v", err)
	} else {
		log.Printf("[Leaderboard] initial refresh wrote %d rows", n)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard refresh worker stopped.")
			return
		case <-ticker.C:
			if _, err := svc.Refresh(ctx); err != nil {
				log.Printf("[Leaderboard] refresh failed: %v", err)
			}
		}
	}
}
