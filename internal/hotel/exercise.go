package hotel

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the hotel drill.
func Exercise() exercise.Exercise {
	reserve := func(kind string) exercise.RunFunc {
		return func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
			if err := exercise.NeedArgs(args, 3, "reserve_"+kind+" <room-number> <start> <end>"); err != nil {
				return "", err
			}
			s, err := parseStay(args, 1)
			if err != nil {
				return "", err
			}
			return Reserve(ctx, db, kind, args[0], s)
		}
	}
	return exercise.Exercise{
		Name:     "hotel",
		Summary:  "Rooms and reservations with custom clean and save",
		Models:   []any{&Hotel{}, &Room{}, &RegularReservation{}, &SpecialReservation{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "add_room", Usage: "<hotel-id> <number> <capacity> <guests> <price>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				r, err := parseRoom(args)
				if err != nil {
					return "", err
				}
				return SaveRoom(ctx, db, r)
			}},
			{Name: "reserve_regular", Usage: "<room-number> <start> <end>", Run: reserve(KindRegular)},
			{Name: "reserve_special", Usage: "<room-number> <start> <end>", Run: reserve(KindSpecial)},
			{Name: "extend_reservation", Usage: "<special-id> <days>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				days, err := exercise.IntArg(args, 1)
				if err != nil {
					return "", err
				}
				return Extend(ctx, db, id, days)
			}},
			{Name: "reservation_cost", Usage: "<regular|special> <id>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 2, "reservation_cost <regular|special> <id>"); err != nil {
					return "", err
				}
				id, err := exercise.UintArg(args, 1)
				if err != nil {
					return "", err
				}
				return ReservationCost(ctx, db, args[0], id)
			}},
		},
	}
}

// Populate inserts one hotel with two rooms and a booking of each kind.
func Populate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	h := &Hotel{Name: "Hotel ABC", Address: "123 Main St"}
	if err := db.Create(h).Error; err != nil {
		return fmt.Errorf("creating hotel: %w", err)
	}
	rooms := []*Room{
		{HotelID: h.ID, Number: "101", Capacity: 2, TotalGuests: 1, PricePerNight: decimal.RequireFromString("100.00")},
		{HotelID: h.ID, Number: "102", Capacity: 3, TotalGuests: 2, PricePerNight: decimal.RequireFromString("150.50")},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("creating rooms: %w", err)
	}
	regular := &RegularReservation{RoomID: rooms[0].ID, Stay: Stay{
		StartDate: exercise.Date(2025, time.January, 1), EndDate: exercise.Date(2025, time.January, 5)}}
	if err := db.Create(regular).Error; err != nil {
		return fmt.Errorf("creating regular reservation: %w", err)
	}
	special := &SpecialReservation{RoomID: rooms[1].ID, Stay: Stay{
		StartDate: exercise.Date(2025, time.January, 10), EndDate: exercise.Date(2025, time.January, 15)}}
	if err := db.Create(special).Error; err != nil {
		return fmt.Errorf("creating special reservation: %w", err)
	}
	return nil
}
