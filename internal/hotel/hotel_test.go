package hotel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

func jan(day int) Stay {
	return Stay{StartDate: exercise.Date(2025, time.January, day)}
}

func stay(from, to int) Stay {
	s := jan(from)
	s.EndDate = exercise.Date(2025, time.January, to)
	return s
}

func TestStay(t *testing.T) {
	s := stay(1, 5)
	assert.Equal(t, 4, s.ReservationPeriod())

	r := RegularReservation{Stay: s, Room: &Room{PricePerNight: decimal.RequireFromString("100.10")}}
	assert.InDelta(t, 400.40, r.CalculateTotalCost(), 1e-9)
	assert.Zero(t, (&SpecialReservation{Stay: s}).CalculateTotalCost())
}

func TestSaveRoom(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := SaveRoom(ctx, db, &Room{HotelID: 1, Number: "201", Capacity: 2, TotalGuests: 2, PricePerNight: decimal.NewFromInt(90)})
	require.NoError(t, err)
	assert.Equal(t, "Room 201 created successfully", got)

	got, err = SaveRoom(ctx, db, &Room{HotelID: 1, Number: "202", Capacity: 2, TotalGuests: 3, PricePerNight: decimal.NewFromInt(90)})
	require.NoError(t, err)
	assert.Equal(t, MsgOverCapacity, got)

	_, err = SaveRoom(ctx, db, &Room{HotelID: 1, Number: "201", Capacity: 2, TotalGuests: 1, PricePerNight: decimal.NewFromInt(90)})
	assert.ErrorIs(t, err, types.ErrDuplicate)
}

func TestReserve(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	tests := []struct {
		name   string
		kind   string
		number string
		stay   Stay
		want   string
	}{
		{"free regular", KindRegular, "101", stay(5, 8), "Regular reservation for room 101"},
		{"overlapping regular", KindRegular, "101", stay(4, 6), "Room 101 cannot be reserved"},
		{"other kind does not clash", KindSpecial, "101", stay(2, 4), "Special reservation for room 101"},
		{"same day", KindSpecial, "102", stay(20, 20), MsgBadDates},
		{"inverted", KindRegular, "102", stay(20, 18), MsgBadDates},
		{"touching special", KindSpecial, "102", stay(15, 17), "Special reservation for room 102"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reserve(ctx, db, tt.kind, tt.number, tt.stay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Reserve(ctx, db, "vip", "101", stay(1, 2))
	assert.ErrorIs(t, err, types.ErrInvalidArgs)
	_, err = Reserve(ctx, db, KindRegular, "999", stay(1, 2))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestExtend(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	// Special reservation 1 holds room 102 from the 10th to the 15th.
	got, err := Reserve(ctx, db, KindSpecial, "102", stay(20, 25))
	require.NoError(t, err)
	require.Equal(t, "Special reservation for room 102", got)

	got, err = Extend(ctx, db, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, MsgExtendFailure, got)

	got, err = Extend(ctx, db, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, MsgExtendFailure, got)

	got, err = Extend(ctx, db, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "Extended reservation for room 102 with 5 days", got)

	got, err = ReservationCost(ctx, db, KindSpecial, 1)
	require.NoError(t, err)
	assert.Equal(t, "Room 102: 10 nights, total cost 1505.00", got)

	got, err = ReservationCost(ctx, db, KindRegular, 1)
	require.NoError(t, err)
	assert.Equal(t, "Room 101: 4 nights, total cost 400.00", got)

	_, err = Extend(ctx, db, 42, 1)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}
