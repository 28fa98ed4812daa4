package generation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
)

func newTestOrchestrator(subs *fakeSubscriptionStore, orders *fakeOrderStore, products *fakeProductStore) *Orchestrator {
	return NewOrchestrator(subs, orders, products, 4)
}

func TestRunGeneratesOrdersForDueSubscriptions(t *testing.T) {
	subs := newFakeSubscriptionStore(
		dailySubscription(1, 10, 1, "2024-01-01"),
		dailySubscription(2, 11, 1, "2024-01-01"),
		dailySubscription(3, 12, 1, "2024-01-01"),
	)
	orders := newFakeOrderStore()
	o := newTestOrchestrator(subs, orders, newFakeProductStore(milkProduct(1)))

	report, err := o.Run(context.Background(), date("2024-01-05"))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Errors)
	assert.Equal(t, "2024-01-05", report.Date)
	assert.Equal(t, 3, orders.count())
}

func TestRunIsIdempotentPerDate(t *testing.T) {
	subs := newFakeSubscriptionStore(
		dailySubscription(1, 10, 1, "2024-01-01"),
		dailySubscription(2, 11, 1, "2024-01-01"),
	)
	orders := newFakeOrderStore()
	o := newTestOrchestrator(subs, orders, newFakeProductStore(milkProduct(1)))

	first, err := o.Run(context.Background(), date("2024-01-05"))
	require.NoError(t, err)
	require.Equal(t, 2, first.Created)

	second, err := o.Run(context.Background(), date("2024-01-05"))
	require.NoError(t, err)

	assert.Equal(t, 0, second.Created)
	assert.Equal(t, first.Created, second.Skipped, "second run skips exactly what the first created")
	assert.Empty(t, second.Errors)
	assert.Equal(t, 2, orders.count())
}

func TestRunAutoResumesLapsedPause(t *testing.T) {
	paused := dailySubscription(1, 10, 1, "2024-01-01")
	paused.Status = models.SubscriptionStatusPaused
	paused.PausedUntil = datePtr("2024-02-10")
	subs := newFakeSubscriptionStore(paused)
	orders := newFakeOrderStore()
	o := newTestOrchestrator(subs, orders, newFakeProductStore(milkProduct(1)))

	// Inside the pause window: never selected, still paused.
	for _, day := range []string{"2024-02-05", "2024-02-07", "2024-02-09"} {
		report, err := o.Run(context.Background(), date(day))
		require.NoError(t, err)
		assert.Equal(t, 0, report.Created, "no delivery on %s", day)
		assert.Equal(t, models.SubscriptionStatusPaused, subs.get(1).Status)
	}

	// On pausedUntil the subscription resumes and is due again.
	report, err := o.Run(context.Background(), date("2024-02-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	resumed := subs.get(1)
	assert.Equal(t, models.SubscriptionStatusActive, resumed.Status)
	assert.Nil(t, resumed.PausedUntil, "resume clears the pause window")
}

func TestRunCompletesSubscriptionOnEndDate(t *testing.T) {
	sub := dailySubscription(1, 10, 1, "2024-02-01")
	sub.EndDate = datePtr("2024-03-01")
	subs := newFakeSubscriptionStore(sub)
	orders := newFakeOrderStore()
	o := newTestOrchestrator(subs, orders, newFakeProductStore(milkProduct(1)))

	report, err := o.Run(context.Background(), date("2024-03-01"))
	require.NoError(t, err)
	require.Equal(t, 1, report.Created, "final delivery still happens on the end date")
	assert.Equal(t, models.SubscriptionStatusCompleted, subs.get(1).Status)

	// Completed subscriptions are out of the pool on the next day.
	next, err := o.Run(context.Background(), date("2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 0, next.Created)
	assert.Equal(t, 0, next.Skipped)
	assert.Equal(t, 1, orders.count())
}

func TestRunIsolatesPerSubscriptionFailures(t *testing.T) {
	healthy := dailySubscription(1, 10, 1, "2024-01-01")
	broken := dailySubscription(2, 11, 99, "2024-01-01") // product 99 does not exist
	subs := newFakeSubscriptionStore(healthy, broken)
	orders := newFakeOrderStore()
	o := newTestOrchestrator(subs, orders, newFakeProductStore(milkProduct(1)))

	report, err := o.Run(context.Background(), date("2024-01-05"))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, uint(2), report.Errors[0].SubscriptionID)
	assert.Contains(t, report.Errors[0].Reason, "product 99")
}

func TestRunAbortsWhenSubscriptionFetchFails(t *testing.T) {
	subs := newFakeSubscriptionStore()
	subs.failGet = true
	o := newTestOrchestrator(subs, newFakeOrderStore(), newFakeProductStore())

	report, err := o.Run(context.Background(), date("2024-01-05"))
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestConcurrentRunsProduceExactlyOneOrderPerSubscription(t *testing.T) {
	const subscriptions = 20
	var fixtures []models.Subscription
	for i := 1; i <= subscriptions; i++ {
		fixtures = append(fixtures, dailySubscription(uint(i), uint(100+i), 1, "2024-01-01"))
	}
	subs := newFakeSubscriptionStore(fixtures...)
	orders := newFakeOrderStore()
	products := newFakeProductStore(milkProduct(1))

	const runs = 4
	var wg sync.WaitGroup
	reports := make([]*RunReport, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := newTestOrchestrator(subs, orders, products)
			report, err := o.Run(context.Background(), date("2024-01-05"))
			assert.NoError(t, err)
			reports[i] = report
		}(i)
	}
	wg.Wait()

	assert.Equal(t, subscriptions, orders.count(), "exactly one order per subscription")

	totalCreated := 0
	for _, report := range reports {
		if report == nil {
			continue
		}
		totalCreated += report.Created
		assert.Empty(t, report.Errors)
	}
	assert.Equal(t, subscriptions, totalCreated, "every subscription created exactly once across runs")

	numbers := make(map[string]bool)
	for _, order := range orders.all() {
		assert.False(t, numbers[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		numbers[order.OrderNumber] = true
	}
}
