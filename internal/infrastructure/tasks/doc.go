// Package tasks provides the in-process background task queue and the
// periodic scheduler that feeds it. Sweeps (match expiry, lease expiry,
// overdue installments, audit retention) and outbound email run here so
// request handlers never block on slow side effects.
package tasks
