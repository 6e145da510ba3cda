package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/order/internal/service/models/order"
)

func TestStatusFromID(t *testing.T) {
	cases := []struct {
		id   int
		want order.Status
	}{
		{1, order.StatusNew},
		{2, order.StatusConfirmed},
		{3, order.StatusCancelled},
		{4, order.StatusFulfilled},
	}

	for _, tc := range cases {
		got, err := order.StatusFromID(tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.id, got.ID())
	}

	_, err := order.StatusFromID(5)
	assert.ErrorIs(t, err, order.ErrUnknownStatus)

	_, err = order.StatusFromID(0)
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestParseStatus(t *testing.T) {
	got, err := order.ParseStatus("FULFILLED")
	require.NoError(t, err)
	assert.Equal(t, order.StatusFulfilled, got)

	_, err = order.ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestStatusTransitions(t *testing.T) {
	all := order.All()

	allowed := map[order.Status][]order.Status{
		order.StatusNew:       {order.StatusConfirmed, order.StatusCancelled, order.StatusFulfilled},
		order.StatusConfirmed: {order.StatusCancelled, order.StatusFulfilled},
		order.StatusCancelled: {},
		order.StatusFulfilled: {},
	}

	for from, nexts := range allowed {
		legal := make(map[order.Status]bool, len(nexts))
		for _, n := range nexts {
			legal[n] = true
		}

		for _, to := range all {
			assert.Equalf(t, legal[to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, order.StatusNew.Terminal())
	assert.False(t, order.StatusConfirmed.Terminal())
	assert.True(t, order.StatusCancelled.Terminal())
	assert.True(t, order.StatusFulfilled.Terminal())
}

func TestOrderOwnedBy(t *testing.T) {
	subject := int64(7)

	owned := order.Order{SubjectID: &subject}
	assert.True(t, owned.OwnedBy(7))
	assert.False(t, owned.OwnedBy(8))

	anonymous := order.Order{}
	assert.False(t, anonymous.OwnedBy(7))
}
