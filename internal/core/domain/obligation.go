package domain

import (
	"errors"
	"time"
)

// ObligationStatus represents the lifecycle state of a fiscal obligation.
type ObligationStatus string

const (
	ObligationPending    ObligationStatus = "pendente"
	ObligationInProgress ObligationStatus = "em_andamento"
	ObligationDone       ObligationStatus = "concluida"
	ObligationCancelled  ObligationStatus = "cancelada"
)

// AllObligationStatuses lists every status, in lifecycle order.
var AllObligationStatuses = []ObligationStatus{
	ObligationPending,
	ObligationInProgress,
	ObligationDone,
	ObligationCancelled,
}

// obligationTransitions defines the allowed state machine transitions.
// Done and cancelled are terminal.
var obligationTransitions = map[ObligationStatus][]ObligationStatus{
	ObligationPending:    {ObligationInProgress, ObligationDone, ObligationCancelled},
	ObligationInProgress: {ObligationDone, ObligationCancelled},
}

var ErrObligationNotFound = errors.New("obligation not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ObligationStatus) CanTransitionTo(next ObligationStatus) bool {
	for _, allowed := range obligationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ObligationHistoryEntry records a single status change on an obligation.
type ObligationHistoryEntry struct {
	Status    ObligationStatus `json:"status" bson:"status"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
	ChangedBy string           `json:"changed_by,omitempty" bson:"changed_by,omitempty"`
	Notes     string           `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Obligation is a recurring or one-off fiscal duty owed by a client company
// (DAS, DCTF, FGTS, IRPJ and the like) with a hard due date.
type Obligation struct {
	ID            string                   `json:"id" bson:"_id,omitempty"`
	ClientID      string                   `json:"client_id" bson:"client_id"`
	Title         string                   `json:"title" bson:"title"`
	Kind          string                   `json:"kind" bson:"kind"` // e.g. DAS, DCTF, FGTS
	Competence    string                   `json:"competence" bson:"competence"` // YYYY-MM period
	DueDate       time.Time                `json:"due_date" bson:"due_date"`
	Status        ObligationStatus         `json:"status" bson:"status"`
	AssignedTo    string                   `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	Notes         string                   `json:"notes,omitempty" bson:"notes,omitempty"`
	RemindedAt    *time.Time               `json:"reminded_at,omitempty" bson:"reminded_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at" bson:"updated_at"`
	StatusHistory []ObligationHistoryEntry `json:"status_history" bson:"status_history"`
}

// Overdue reports whether the obligation is past due and still open at now.
func (o *Obligation) Overdue(now time.Time) bool {
	if o.Status == ObligationDone || o.Status == ObligationCancelled {
		return false
	}
	return now.After(o.DueDate)
}
