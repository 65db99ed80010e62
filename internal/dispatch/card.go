package dispatch

import "context"

// AssignFunc is the card's callback for requesting a technician on a
// service order.
type AssignFunc func(ctx context.Context, requestID uint) error

// Card is the per-row presentational unit for a service order on the
// board. It owns nothing but a busy flag for its own assign button; the
// request data and the assignment call both belong to the controller.
type Card struct {
	Request  RequestView
	onAssign AssignFunc

	busy bool
}

// RequestView is the slice of a service request the card renders.
type RequestView struct {
	ID               uint
	ServiceName      string
	Price            float64
	Completion       string
	TechnicianName   string
	TechnicianStatus string
}

func NewCard(view RequestView, onAssign AssignFunc) *Card {
	return &Card{Request: view, onAssign: onAssign}
}

// AssigneeLabel is the line under the service name: the assignee once one
// exists, otherwise the technician pipeline status.
func (c *Card) AssigneeLabel() string {
	if c.Request.TechnicianName != "" {
		return c.Request.TechnicianName
	}
	if c.Request.TechnicianStatus != "" {
		return c.Request.TechnicianStatus
	}
	return "Unassigned"
}

// RequestAssignment fires the assignment callback, holding the busy flag
// for the duration so the button cannot double-fire.
func (c *Card) RequestAssignment(ctx context.Context) error {
	if c.busy || c.onAssign == nil {
		return nil
	}
	c.busy = true
	defer func() { c.busy = false }()
	return c.onAssign(ctx, c.Request.ID)
}

func (c *Card) Busy() bool {
	return c.busy
}
