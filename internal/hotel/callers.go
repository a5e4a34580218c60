package hotel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// Reservation kinds.
const (
	KindRegular = "regular"
	KindSpecial = "special"
)

// rejection turns a validation failure into the caller's output.
func rejection(err error) (string, error) {
	var ve *validate.Error
	if errors.As(err, &ve) {
		if msgs := ve.Messages(validate.NonField); len(msgs) > 0 {
			return strings.Join(msgs, ", "), nil
		}
		return exercise.Lines(ve.Lines()), nil
	}
	return "", err
}

// SaveRoom stores a room.
func SaveRoom(ctx context.Context, db *gorm.DB, r *Room) (string, error) {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return rejection(store.TranslateError(err))
	}
	return fmt.Sprintf("Room %s created successfully", r.Number), nil
}

func roomByNumber(db *gorm.DB, number string) (Room, error) {
	var r Room
	if err := store.First(db.Where("number = ?", number), &r); err != nil {
		return Room{}, fmt.Errorf("room %s: %w", number, err)
	}
	return r, nil
}

// Reserve books room number for s as a regular or special reservation.
func Reserve(ctx context.Context, db *gorm.DB, kind, number string, s Stay) (string, error) {
	db = db.WithContext(ctx)
	room, err := roomByNumber(db, number)
	if err != nil {
		return "", err
	}
	var row any
	switch kind {
	case KindRegular:
		row = &RegularReservation{Stay: s, RoomID: room.ID}
	case KindSpecial:
		row = &SpecialReservation{Stay: s, RoomID: room.ID}
	default:
		return "", fmt.Errorf("%w: unknown reservation kind %q", types.ErrInvalidArgs, kind)
	}
	if err := db.Omit(clause.Associations).Create(row).Error; err != nil {
		return rejection(err)
	}
	if kind == KindRegular {
		return fmt.Sprintf("Regular reservation for room %s", room.Number), nil
	}
	return fmt.Sprintf("Special reservation for room %s", room.Number), nil
}

// ExtendReservation moves the end of a special reservation days later.
func (r *SpecialReservation) ExtendReservation(db *gorm.DB, days int) (string, error) {
	if days <= 0 {
		return "", validate.NewError(validate.NonField, MsgExtendFailure)
	}
	extended := r.Stay
	extended.EndDate = datatypes.Date(time.Time(r.EndDate).AddDate(0, 0, days))
	taken, err := overlaps(db, &SpecialReservation{}, r.ID, r.RoomID, extended)
	if err != nil {
		return "", fmt.Errorf("checking reservation %d: %w", r.ID, err)
	}
	if taken {
		return "", validate.NewError(validate.NonField, MsgExtendFailure)
	}
	r.Stay = extended
	if err := db.Omit(clause.Associations).Save(r).Error; err != nil {
		return "", err
	}
	number := ""
	if r.Room != nil {
		number = r.Room.Number
	}
	return fmt.Sprintf("Extended reservation for room %s with %d days", number, days), nil
}

// Extend loads special reservation id and extends it.
func Extend(ctx context.Context, db *gorm.DB, id uint, days int) (string, error) {
	var out string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r SpecialReservation
		if err := store.First(tx.Preload("Room").Where("id = ?", id), &r); err != nil {
			return fmt.Errorf("special reservation %d: %w", id, err)
		}
		var err error
		out, err = r.ExtendReservation(tx, days)
		return err
	})
	if err != nil {
		return rejection(err)
	}
	return out, nil
}

// ReservationCost describes the length and price of reservation id of kind.
func ReservationCost(ctx context.Context, db *gorm.DB, kind string, id uint) (string, error) {
	q := db.WithContext(ctx).Preload("Room").Where("id = ?", id)
	var (
		stay   Stay
		cost   float64
		number string
	)
	switch kind {
	case KindRegular:
		var r RegularReservation
		if err := store.First(q, &r); err != nil {
			return "", fmt.Errorf("regular reservation %d: %w", id, err)
		}
		stay, cost, number = r.Stay, r.CalculateTotalCost(), r.Room.Number
	case KindSpecial:
		var r SpecialReservation
		if err := store.First(q, &r); err != nil {
			return "", fmt.Errorf("special reservation %d: %w", id, err)
		}
		stay, cost, number = r.Stay, r.CalculateTotalCost(), r.Room.Number
	default:
		return "", fmt.Errorf("%w: unknown reservation kind %q", types.ErrInvalidArgs, kind)
	}
	return fmt.Sprintf("Room %s: %d nights, total cost %s", number, stay.ReservationPeriod(), exercise.Fixed(cost, 2)), nil
}

func parseRoom(args []string) (*Room, error) {
	if err := exercise.NeedArgs(args, 5, "add_room <hotel-id> <number> <capacity> <guests> <price>"); err != nil {
		return nil, err
	}
	hotelID, err := exercise.UintArg(args, 0)
	if err != nil {
		return nil, err
	}
	capacity, err := exercise.UintArg(args, 2)
	if err != nil {
		return nil, err
	}
	guests, err := exercise.UintArg(args, 3)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(args[4])
	if err != nil {
		return nil, fmt.Errorf("%w: price: %v", types.ErrInvalidArgs, err)
	}
	return &Room{HotelID: hotelID, Number: args[1], Capacity: capacity, TotalGuests: guests, PricePerNight: price}, nil
}

func parseStay(args []string, from int) (Stay, error) {
	start, err := exercise.ParseDate(exercise.Arg(args, from))
	if err != nil {
		return Stay{}, err
	}
	end, err := exercise.ParseDate(exercise.Arg(args, from+1))
	if err != nil {
		return Stay{}, err
	}
	return Stay{StartDate: start, EndDate: end}, nil
}
