package event

import (
	"context"

	"jobbridge/internal/common"
)

const (
	ApplicationSubmitted  = "application.submitted"
	ApplicationTransition = "application.status_changed"
	ApplicationWithdrawn  = "application.withdrawn"
	PaymentApproved       = "payment.approved"
	PaymentRejected       = "payment.rejected"
	PlacementCreated      = "placement.created"
)

type Event struct {
	Name        string            `json:"name"`
	CandidateID common.UUID       `json:"candidate_id,omitempty"`
	Payload     map[string]string `json:"payload,omitempty"`
}

// Notifier hands events to the external notification collaborator.
// Delivery is fire-and-forget: implementations log failures and never
// return them into the calling operation.
type Notifier interface {
	Publish(ctx context.Context, e Event)
}
