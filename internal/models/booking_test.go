package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingStatusPending, BookingStatusNegotiating, true},
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusNegotiating, BookingStatusApproved, true},
		{BookingStatusNegotiating, BookingStatusRejected, true},
		{BookingStatusNegotiating, BookingStatusPending, false},
		{BookingStatusApproved, BookingStatusRejected, false},
		{BookingStatusApproved, BookingStatusNegotiating, false},
		{BookingStatusRejected, BookingStatusApproved, false},
		{BookingStatusRejected, BookingStatusPending, false},
		// same-state moves are idempotent
		{BookingStatusPending, BookingStatusPending, true},
		{BookingStatusNegotiating, BookingStatusNegotiating, true},
		{BookingStatusApproved, BookingStatusApproved, true},
		{BookingStatusRejected, BookingStatusRejected, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusNegotiating.Terminal())
	assert.True(t, BookingStatusApproved.Terminal())
	assert.True(t, BookingStatusRejected.Terminal())
}

func TestTribeValidity(t *testing.T) {
	assert.True(t, TribeRed.Valid())
	assert.False(t, TribeAll.Valid(), "all is a targeting value, not a membership")
	assert.True(t, TribeAll.ValidTarget())
	assert.False(t, Tribe("green").ValidTarget())
	assert.False(t, TribeNone.ValidTarget())
}

func TestForumCategoryLookup(t *testing.T) {
	assert.True(t, ValidForumScope(TribeMain))
	assert.True(t, ValidForumScope(TribeYellow))
	assert.False(t, ValidForumScope(TribeAll))

	assert.True(t, ValidForumCategory(TribeMain, "introductions"))
	assert.True(t, ValidForumCategory(TribeBlue, "deep-cuts"))
	assert.False(t, ValidForumCategory(TribeMain, "deep-cuts"))
	assert.False(t, ValidForumCategory(TribeRed, ""))
}
