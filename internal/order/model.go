package order

import "time"

// FulfillmentStatus is the lifecycle stage of a physical order. It is a
// separate axis from PaymentStatus: an order can be paid and still
// processing, or delivered with payment pending.
type FulfillmentStatus string

const (
	StatusProcessing FulfillmentStatus = "processing"
	StatusShipped    FulfillmentStatus = "shipped"
	StatusDelivered  FulfillmentStatus = "delivered"
	StatusReturned   FulfillmentStatus = "returned"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// DeliveryStage is the three-step progress indicator shown on the order
// detail view. It is always derived from the fulfillment status, never
// stored on its own.
type DeliveryStage string

const (
	StagePending    DeliveryStage = "pending"
	StageDispatched DeliveryStage = "dispatched"
	StageDelivered  DeliveryStage = "delivered"
)

// StageOf maps a fulfillment status onto the displayed delivery stage.
// A returned order already completed delivery, so it shows the final stage.
func StageOf(s FulfillmentStatus) DeliveryStage {
	switch s {
	case StatusShipped:
		return StageDispatched
	case StatusDelivered, StatusReturned:
		return StageDelivered
	default:
		return StagePending
	}
}

// Product is the snapshot of the purchased product embedded in an order
// record, exactly as the backend returns it.
type Product struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
}

type Order struct {
	OrderID        string            `json:"order_id"`
	UserID         uint              `json:"user_id"`
	OrderDate      time.Time         `json:"order_date"`
	Status         FulfillmentStatus `json:"status"`
	PaymentStatus  PaymentStatus     `json:"payment_status"`
	TotalPrice     float64           `json:"total_price"`
	UnitPrice      float64           `json:"unit_price"`
	Quantity       int               `json:"quantity"`
	Products       Product           `json:"products"`
	TrackingNumber string            `json:"tracking_number,omitempty"`
	AssignedTo     string            `json:"assigned_to,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Delivered reports whether the order reached the customer. Review and
// return actions are only offered for delivered orders.
func (o Order) Delivered() bool {
	return o.Status == StatusDelivered
}

// Assigned reports whether a driver has been associated with the order.
func (o Order) Assigned() bool {
	return o.AssignedTo != ""
}

type Customer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone_number"`
	Address  string `json:"address"`
	UserID   uint   `json:"user_id"`
}

type CompletionStatus string

const (
	ServiceIncomplete CompletionStatus = "incomplete"
	ServiceComplete   CompletionStatus = "complete"
)

// ServiceDetails describes the requested service itself.
type ServiceDetails struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type ServiceRequest struct {
	ID               uint             `json:"id"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	ServiceDetails   ServiceDetails   `json:"serviceDetails"`
	TechnicianID     *uint            `json:"technician_id"`
	TechnicianName   string           `json:"technician_name,omitempty"`
	TechnicianStatus string           `json:"technician_status,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Unassigned reports whether the request still waits for a technician.
func (r ServiceRequest) Unassigned() bool {
	return r.TechnicianID == nil
}

type Driver struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

// Feedback is a customer review of a delivered order. Built on submission,
// sent to the backend, then discarded from local state.
type Feedback struct {
	UserID   uint   `json:"user_id"`
	OrderID  string `json:"order_id"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}
