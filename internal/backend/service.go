// Package backend is the client side of the remote REFNET data service.
// Everything the screens know about the outside world goes through the
// Service interface; the REST implementation, the cache decorator, and the
// test mocks are all interchangeable behind it.
package backend

import (
	"context"
	"strings"

	"refnet-client/internal/order"
)

type Service interface {
	// CheckUser looks a customer up by email.
	CheckUser(ctx context.Context, email string) (order.Customer, error)

	// CustomerOrders lists the orders belonging to one customer,
	// product snapshot embedded.
	CustomerOrders(ctx context.Context, userID uint) ([]order.Order, error)

	// RequestedServices lists the service requests one customer opened.
	RequestedServices(ctx context.Context, userID uint) ([]order.ServiceRequest, error)

	// SubmitFeedback sends a review. Domain rejections (duplicate review
	// and the like) come back in the FeedbackResult; the error return is
	// reserved for transport failures.
	SubmitFeedback(ctx context.Context, fb order.Feedback) (FeedbackResult, error)

	// Orders lists every order, payment status included. Dispatcher view.
	Orders(ctx context.Context) ([]order.Order, error)

	// Drivers lists the available delivery drivers.
	Drivers(ctx context.Context) ([]order.Driver, error)

	// AssignDriver associates a driver with an order.
	AssignDriver(ctx context.Context, orderID string, driverID uint) error
}

type FeedbackOutcome string

const (
	FeedbackSubmitted FeedbackOutcome = "SUBMITTED"
	FeedbackRejected  FeedbackOutcome = "REJECTED"
)

// FeedbackResult distinguishes "submitted" from "rejected by service".
// The wire protocol signals rejection as a reply string prefixed "Error";
// that convention is normalized here and nowhere else.
type FeedbackResult struct {
	Outcome FeedbackOutcome
	Message string
}

func (r FeedbackResult) Rejected() bool {
	return r.Outcome == FeedbackRejected
}

// feedbackResultFromReply classifies the backend's reply string.
func feedbackResultFromReply(reply string) FeedbackResult {
	if strings.HasPrefix(reply, "Error") {
		return FeedbackResult{Outcome: FeedbackRejected, Message: reply}
	}
	return FeedbackResult{Outcome: FeedbackSubmitted, Message: reply}
}
