package matching

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is wrapped by Transition so callers can detect
// workflow violations without parsing the message.
var ErrIllegalTransition = errors.New("illegal match transition")

// Match request statuses. A request advances linearly through the workflow
// and can be closed at any point by one of the terminal statuses.
const (
	StatusPending            = "pending"
	StatusAccepted           = "accepted"
	StatusVisitScheduled     = "visit_scheduled"
	StatusVisitCompleted     = "visit_completed"
	StatusDocumentsSubmitted = "documents_submitted"
	StatusDocumentsApproved  = "documents_approved"
	StatusContractCreated    = "contract_created"
	StatusRejected           = "rejected"
	StatusCancelled          = "cancelled"
	StatusExpired            = "expired"
)

// Workflow stages derived from the status.
const (
	StageVisit     = "visit"
	StageDocuments = "documents"
	StageContract  = "contract"
	StageClosed    = "closed"
)

// transitions holds the legal forward moves for each non-terminal status.
// Terminal statuses have no entry and admit no further moves.
var transitions = map[string][]string{
	StatusPending:            {StatusAccepted, StatusRejected, StatusCancelled, StatusExpired},
	StatusAccepted:           {StatusVisitScheduled, StatusCancelled, StatusExpired},
	StatusVisitScheduled:     {StatusVisitCompleted, StatusCancelled, StatusExpired},
	StatusVisitCompleted:     {StatusDocumentsSubmitted, StatusCancelled, StatusExpired},
	StatusDocumentsSubmitted: {StatusDocumentsApproved, StatusRejected, StatusCancelled, StatusExpired},
	StatusDocumentsApproved:  {StatusContractCreated, StatusCancelled, StatusExpired},
}

// IsTerminal reports whether status admits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case StatusContractCreated, StatusRejected, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the move from one status to another and returns an
// error naming both states when the move is illegal.
func Transition(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w from %q to %q", ErrIllegalTransition, from, to)
	}
	return nil
}

// Stage maps a status to the workflow stage it belongs to.
func Stage(status string) string {
	switch status {
	case StatusPending, StatusAccepted, StatusVisitScheduled, StatusVisitCompleted:
		return StageVisit
	case StatusDocumentsSubmitted, StatusDocumentsApproved:
		return StageDocuments
	case StatusContractCreated:
		return StageContract
	default:
		return StageClosed
	}
}
