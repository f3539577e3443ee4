package models

import "time"

type DispatchOutcome string

const (
	OutcomeNotified     DispatchOutcome = "notified"
	OutcomeCooldown     DispatchOutcome = "cooldown"
	OutcomeNotifyFailed DispatchOutcome = "notify_failed"
	OutcomeLookupFailed DispatchOutcome = "lookup_failed"
)

type DispatchResult struct {
	Condition AlertCondition
	Outcome   DispatchOutcome
	EmailSent bool
	// Logged is false only when the alert log insert itself failed.
	Logged bool
}

type CycleResult struct {
	ID         string
	StartedAt  time.Time
	Reading    *Reading
	Conditions []AlertCondition
	Dispatches []DispatchResult
}

func (r *CycleResult) NotifiedCount() int {
	count := 0
	for _, d := range r.Dispatches {
		if d.EmailSent {
			count++
		}
	}
	return count
}
