//go:build unit
// +build unit

package payments

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlan(totalCents int64, num int, firstDue time.Time) *PaymentPlan {
	return &PaymentPlan{
		ID:              uuid.New().String(),
		LeaseID:         uuid.New().String(),
		TotalCents:      totalCents,
		Currency:        "COP",
		InstallmentNum:  num,
		Frequency:       FrequencyMonthly,
		FirstDueDate:    firstDue,
		DateTimeCreated: time.Now().UTC(),
	}
}

func TestBuildInstallments_EvenSplit(t *testing.T) {
	firstDue := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(1200000, 12, firstDue)

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, installments, 12)

	var sum int64
	for i, inst := range installments {
		assert.Equal(t, plan.ID, inst.PlanID)
		assert.Equal(t, i+1, inst.Sequence)
		assert.Equal(t, int64(100000), inst.AmountCents)
		assert.Equal(t, InstallmentDue, inst.Status)
		sum += inst.AmountCents
	}
	assert.Equal(t, plan.TotalCents, sum)
}

func TestBuildInstallments_RemainderFrontLoaded(t *testing.T) {
	firstDue := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(1000, 3, firstDue)

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, int64(334), installments[0].AmountCents)
	assert.Equal(t, int64(333), installments[1].AmountCents)
	assert.Equal(t, int64(333), installments[2].AmountCents)

	var sum int64
	for _, inst := range installments {
		sum += inst.AmountCents
	}
	assert.Equal(t, plan.TotalCents, sum)
}

func TestBuildInstallments_SumAlwaysMatchesTotal(t *testing.T) {
	firstDue := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	totals := []int64{1, 7, 99, 1001, 123457, 999999999}
	counts := []int{1, 2, 3, 7, 11, 12, 24}

	for _, total := range totals {
		for _, count := range counts {
			if total < int64(count) {
				continue
			}
			plan := newTestPlan(total, count, firstDue)
			installments, err := BuildInstallments(plan, time.Now().UTC())
			require.NoError(t, err)

			var sum int64
			prev := int64(1 << 62)
			for _, inst := range installments {
				sum += inst.AmountCents
				assert.LessOrEqual(t, inst.AmountCents, prev, "amounts must not increase")
				prev = inst.AmountCents
			}
			assert.Equal(t, total, sum, "total=%d count=%d", total, count)
		}
	}
}

func TestBuildInstallments_MonthEndClamping(t *testing.T) {
	firstDue := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(500000, 5, firstDue)

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, installments, 5)

	assert.Equal(t, time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
	assert.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC), installments[3].DueDate)
	assert.Equal(t, time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), installments[4].DueDate)
}

func TestBuildInstallments_LeapFebruary(t *testing.T) {
	firstDue := time.Date(2028, time.January, 30, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(200000, 2, firstDue)

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, installments, 2)

	// 2028 is a leap year.
	assert.Equal(t, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
}

func TestBuildInstallments_YearRollover(t *testing.T) {
	firstDue := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(300000, 4, firstDue)

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.December, 10, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
	assert.Equal(t, time.Date(2027, time.February, 10, 0, 0, 0, 0, time.UTC), installments[3].DueDate)
}

func TestBuildInstallments_WeeklyFrequency(t *testing.T) {
	firstDue := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(400000, 4, firstDue)
	plan.Frequency = FrequencyWeekly

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, installments, 4)

	assert.Equal(t, firstDue, installments[0].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 0, 7), installments[1].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 0, 14), installments[2].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 0, 21), installments[3].DueDate)
}

func TestBuildInstallments_BiweeklyFrequency(t *testing.T) {
	firstDue := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	plan := newTestPlan(300000, 3, firstDue)
	plan.Frequency = FrequencyBiweekly

	installments, err := BuildInstallments(plan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, firstDue, installments[0].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 0, 14), installments[1].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 0, 28), installments[2].DueDate)
}

func TestBuildInstallments_Invalid(t *testing.T) {
	firstDue := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	plan := newTestPlan(100, 0, firstDue)
	_, err := BuildInstallments(plan, time.Now().UTC())
	assert.Error(t, err)

	plan = newTestPlan(2, 3, firstDue)
	_, err = BuildInstallments(plan, time.Now().UTC())
	assert.Error(t, err)

	plan = newTestPlan(100, 2, firstDue)
	plan.Frequency = "yearly"
	_, err = BuildInstallments(plan, time.Now().UTC())
	assert.Error(t, err)
}
