package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageOf(t *testing.T) {
	cases := []struct {
		status FulfillmentStatus
		want   DeliveryStage
	}{
		{StatusProcessing, StagePending},
		{StatusShipped, StageDispatched},
		{StatusDelivered, StageDelivered},
		{StatusReturned, StageDelivered},
		{FulfillmentStatus("garbage"), StagePending},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.want, StageOf(tc.status))
		})
	}
}

func TestOrderPredicates(t *testing.T) {
	t.Run("Delivered", func(t *testing.T) {
		assert.True(t, Order{Status: StatusDelivered}.Delivered())
		assert.False(t, Order{Status: StatusShipped}.Delivered())
		assert.False(t, Order{Status: StatusProcessing}.Delivered())
	})

	t.Run("Assigned", func(t *testing.T) {
		assert.True(t, Order{AssignedTo: "Driver A"}.Assigned())
		assert.False(t, Order{}.Assigned())
	})
}

func TestServiceRequestUnassigned(t *testing.T) {
	techID := uint(3)
	assert.False(t, ServiceRequest{TechnicianID: &techID}.Unassigned())
	assert.True(t, ServiceRequest{}.Unassigned())
}
