package payments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildInstallments splits the plan's total into its installments. Amounts
// are equal to the cent with any remainder spread one cent at a time over
// the earliest installments, so the sum always equals the total. Due dates
// advance per the plan's frequency; monthly advancement clamps to the last
// day of shorter months (a Jan 31 start yields Feb 28/29, then Mar 31).
func BuildInstallments(plan *PaymentPlan, now time.Time) ([]*Installment, error) {
	if plan.InstallmentNum < 1 {
		return nil, fmt.Errorf("invalid installment count: %d", plan.InstallmentNum)
	}
	if plan.TotalCents < int64(plan.InstallmentNum) {
		return nil, fmt.Errorf("total %d cents cannot be split into %d installments", plan.TotalCents, plan.InstallmentNum)
	}

	base := plan.TotalCents / int64(plan.InstallmentNum)
	remainder := plan.TotalCents % int64(plan.InstallmentNum)

	installments := make([]*Installment, 0, plan.InstallmentNum)
	for i := 0; i < plan.InstallmentNum; i++ {
		amount := base
		if int64(i) < remainder {
			amount++
		}

		dueDate, err := nthDueDate(plan.Frequency, plan.FirstDueDate, i)
		if err != nil {
			return nil, err
		}

		installments = append(installments, &Installment{
			ID:              uuid.New().String(),
			PlanID:          plan.ID,
			Sequence:        i + 1,
			AmountCents:     amount,
			DueDate:         dueDate,
			Status:          InstallmentDue,
			DateTimeCreated: now,
		})
	}

	return installments, nil
}

// nthDueDate returns the due date n steps after first for the given
// frequency.
func nthDueDate(frequency string, first time.Time, n int) (time.Time, error) {
	switch frequency {
	case FrequencyWeekly:
		return first.AddDate(0, 0, 7*n), nil
	case FrequencyBiweekly:
		return first.AddDate(0, 0, 14*n), nil
	case FrequencyMonthly:
		return addMonthsClamped(first, n), nil
	default:
		return time.Time{}, fmt.Errorf("unknown plan frequency %q", frequency)
	}
}

// addMonthsClamped adds months to t keeping the day of month where possible.
// When the target month is shorter than t's day, the date clamps to the
// month's last day instead of rolling over, which is what time.AddDate does.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
