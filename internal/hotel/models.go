// Package hotel is the reservations drill: rooms that refuse too many guests
// and two kinds of bookings that refuse overlapping stays.
package hotel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Validation messages.
const (
	MsgOverCapacity  = "Total guests are more than the capacity of the room"
	MsgBadDates      = "Start date cannot be after or in the same end date"
	MsgExtendFailure = "Error during extending reservation"
)

// Hotel owns rooms.
type Hotel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Address string `gorm:"size:200;not null" json:"address" validate:"required,max=200"`
}

func (h *Hotel) BeforeSave(*gorm.DB) error {
	return validate.Struct(h, nil)
}

// Room is a bookable room of a hotel.
type Room struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Number        string          `gorm:"size:100;not null;uniqueIndex" json:"number" validate:"required,max=100"`
	Capacity      uint            `gorm:"not null" json:"capacity"`
	TotalGuests   uint            `gorm:"not null" json:"total_guests"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_night" validate:"gte=0,decimal=10:2"`

	HotelID uint   `gorm:"not null;index" json:"hotel_id"`
	Hotel   *Hotel `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// Clean rejects more guests than the room holds.
func (r *Room) Clean() error {
	if r.TotalGuests > r.Capacity {
		return validate.NewError(validate.NonField, MsgOverCapacity)
	}
	return nil
}

func (r *Room) String() string { return "Room " + r.Number }

func (r *Room) BeforeSave(*gorm.DB) error {
	e := validate.From(validate.Struct(r, nil))
	e.Merge(r.Clean())
	return e.OrNil()
}

// Stay is the date range shared by every reservation kind. EndDate is the
// checkout day.
type Stay struct {
	StartDate datatypes.Date `gorm:"not null;index" json:"start_date"`
	EndDate   datatypes.Date `gorm:"not null;index" json:"end_date"`
}

// ReservationPeriod returns the number of nights.
func (s Stay) ReservationPeriod() int {
	return int(time.Time(s.EndDate).Sub(time.Time(s.StartDate)).Hours() / 24)
}

func (s Stay) totalCost(room *Room) float64 {
	if room == nil {
		return 0
	}
	return room.PricePerNight.Mul(decimal.NewFromInt(int64(s.ReservationPeriod()))).Round(2).InexactFloat64()
}

// RegularReservation is a standard booking.
type RegularReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Stay
	RoomID uint  `gorm:"not null;index" json:"room_id"`
	Room   *Room `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CalculateTotalCost prices the stay at the room's nightly rate. Room must
// be loaded.
func (r *RegularReservation) CalculateTotalCost() float64 {
	return r.totalCost(r.Room)
}

func (r *RegularReservation) BeforeSave(tx *gorm.DB) error {
	return clean(tx, &RegularReservation{}, r.ID, r.RoomID, r.Stay)
}

// SpecialReservation is a booking that can be extended.
type SpecialReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Stay
	RoomID uint  `gorm:"not null;index" json:"room_id"`
	Room   *Room `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CalculateTotalCost prices the stay at the room's nightly rate. Room must
// be loaded.
func (r *SpecialReservation) CalculateTotalCost() float64 {
	return r.totalCost(r.Room)
}

func (r *SpecialReservation) BeforeSave(tx *gorm.DB) error {
	return clean(tx, &SpecialReservation{}, r.ID, r.RoomID, r.Stay)
}

// clean checks the dates of a reservation and that no other reservation of
// the same kind holds the room for an overlapping stay.
func clean(tx *gorm.DB, model any, id, roomID uint, s Stay) error {
	if !time.Time(s.StartDate).Before(time.Time(s.EndDate)) {
		return validate.NewError(validate.NonField, MsgBadDates)
	}
	taken, err := overlaps(tx, model, id, roomID, s)
	if err != nil {
		return err
	}
	if !taken {
		return nil
	}
	var room Room
	if err := tx.Select("number").Where("id = ?", roomID).Take(&room).Error; err != nil {
		return fmt.Errorf("loading room %d: %w", roomID, err)
	}
	return validate.NewError(validate.NonField, fmt.Sprintf("Room %s cannot be reserved", room.Number))
}

// overlaps reports whether another row of model, other than id, books
// roomID for part of s.
func overlaps(tx *gorm.DB, model any, id, roomID uint, s Stay) (bool, error) {
	var n int64
	err := tx.Model(model).
		Where("room_id = ? AND id <> ? AND start_date < ? AND end_date > ?", roomID, id, s.EndDate, s.StartDate).
		Count(&n).Error
	return n > 0, err
}
