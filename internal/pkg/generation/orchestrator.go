package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
)

const (
	// DefaultWorkerCount bounds concurrent materializations per run.
	DefaultWorkerCount = 5
	// subscriptionTimeout caps one subscription's materialization,
	// including its catalog lookups.
	subscriptionTimeout = 30 * time.Second
)

// Orchestrator is the once-per-day entry point of the subscription order
// engine. It auto-resumes lapsed pauses, selects the due set, fans the
// due subscriptions out over a bounded worker pool, and rolls the
// per-subscription outcomes up into a run report. Safe to invoke any
// number of times for the same date.
type Orchestrator struct {
	subs    SubscriptionStore
	mat     *Materializer
	workers int
}

// NewOrchestrator wires the engine from injected stores. workers <= 0
// falls back to DefaultWorkerCount.
func NewOrchestrator(subs SubscriptionStore, orders OrderStore, products ProductStore, workers int) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Orchestrator{
		subs:    subs,
		mat:     NewMaterializer(orders, products),
		workers: workers,
	}
}

// Run generates delivery orders for the given reference date. Fetching
// the subscription set is the only fatal failure; everything after that
// is isolated per subscription and recorded in the report.
func (o *Orchestrator) Run(ctx context.Context, referenceDate time.Time) (*RunReport, error) {
	ref := DateOnly(referenceDate)
	log.Infof("[Generation] Starting run for %s", ref.Format("2006-01-02"))

	report := &RunReport{Date: ref.Format("2006-01-02"), RanAt: time.Now()}

	subs, err := o.subs.GetByStatus(models.SubscriptionStatusActive, models.SubscriptionStatusPaused)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	var mu sync.Mutex
	candidates := make([]models.Subscription, 0, len(subs))
	for i := range subs {
		sub := subs[i]
		if sub.Status == models.SubscriptionStatusPaused {
			resumed, err := o.autoResume(&sub, ref)
			if err != nil {
				report.Errors = append(report.Errors, RunError{SubscriptionID: sub.ID, Reason: err.Error()})
				continue
			}
			if !resumed {
				continue
			}
		}
		candidates = append(candidates, sub)
	}

	due := SelectDue(ref, candidates)
	log.Infof("[Generation] %d of %d subscriptions due on %s", len(due), len(subs), report.Date)

	jobs := make(chan models.Subscription)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				outcome := o.processOne(ctx, &sub, ref)

				mu.Lock()
				switch outcome.Kind {
				case OutcomeCreated:
					report.Created++
				case OutcomeAlreadyExists:
					report.Skipped++
				case OutcomeFailed:
					reason := outcome.Reason
					if outcome.Err != nil {
						reason = fmt.Sprintf("%s: %v", outcome.Reason, outcome.Err)
					}
					report.Errors = append(report.Errors, RunError{SubscriptionID: sub.ID, Reason: reason})
				}
				mu.Unlock()
			}
		}()
	}

	for _, sub := range due {
		jobs <- sub
	}
	close(jobs)
	wg.Wait()

	log.Infof("[Generation] Run for %s finished: created=%d skipped=%d errors=%d",
		report.Date, report.Created, report.Skipped, len(report.Errors))
	return report, nil
}

// processOne materializes a single subscription and, when its end date is
// the reference date, completes it. One subscription's failure never
// touches another's.
func (o *Orchestrator) processOne(ctx context.Context, sub *models.Subscription, ref time.Time) Outcome {
	subCtx, cancel := context.WithTimeout(ctx, subscriptionTimeout)
	defer cancel()

	outcome := o.mat.Materialize(subCtx, sub, ref)
	if outcome.Kind == OutcomeFailed {
		log.Warnf("[Generation] Subscription %d failed on %s: %s (%v)",
			sub.ID, ref.Format("2006-01-02"), outcome.Reason, outcome.Err)
		return outcome
	}

	if outcome.Kind == OutcomeCreated {
		log.Infof("[Generation] Created order %s for subscription %d", outcome.OrderNumber, sub.ID)
	}

	// Final delivery on the end date closes the subscription out.
	// AlreadyExists counts as success here so a re-run can finish a
	// completion that failed after the order insert.
	if sub.EndDate != nil && DateOnly(*sub.EndDate).Equal(ref) {
		if err := sub.Complete(); err != nil {
			log.Errorf("[Generation] Subscription %d completion rejected: %v", sub.ID, err)
			return outcome
		}
		if err := o.subs.Update(sub); err != nil {
			log.Errorf("[Generation] Failed to persist completion of subscription %d: %v", sub.ID, err)
			return Outcome{Kind: outcome.Kind, OrderID: outcome.OrderID, OrderNumber: outcome.OrderNumber}
		}
		log.Infof("[Generation] Subscription %d completed after final delivery on %s", sub.ID, ref.Format("2006-01-02"))
	}

	return outcome
}

// autoResume reactivates a paused subscription whose pause window has
// lapsed. Returns whether the subscription is now a selection candidate.
func (o *Orchestrator) autoResume(sub *models.Subscription, ref time.Time) (bool, error) {
	if sub.PausedUntil == nil || DateOnly(*sub.PausedUntil).After(ref) {
		return false, nil
	}
	if err := sub.Resume(); err != nil {
		return false, fmt.Errorf("auto-resume rejected: %w", err)
	}
	if err := o.subs.Update(sub); err != nil {
		return false, fmt.Errorf("auto-resume update failed: %w", err)
	}
	log.Infof("[Generation] Auto-resumed subscription %d (pause lapsed)", sub.ID)
	return true, nil
}
