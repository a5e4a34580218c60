package guild

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Field errors.
var (
	ErrInvalidStudentID = errors.New("Invalid input for student ID")
	ErrCardDigits       = errors.New("The card number must contain only digits")
	ErrCardLength       = errors.New("The card number must be exactly 16 characters long")
)

func init() {
	validate.RegisterRegex("masked_card", `^\*{4}-\*{4}-\*{4}-\d{4}$`, "Enter a valid value.")
}

// ParseStudentID converts v to a student id, truncating fractions. Numbers
// and numeric strings are accepted.
func ParseStudentID(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint:
		return int(x), nil
	case float32:
		f = float64(x)
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, ErrInvalidStudentID
		}
		f = parsed
	default:
		return 0, ErrInvalidStudentID
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidStudentID
	}
	return int(f), nil
}

var studentMessages = validate.Messages{
	"student_id.gt": "ID cannot be less than or equal to zero",
}

// Student carries a positive student id.
type Student struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	StudentID int    `gorm:"not null" json:"student_id" validate:"gt=0"`
}

func (s *Student) BeforeSave(*gorm.DB) error { return validate.Struct(s, studentMessages) }

// MaskCardNumber turns a 16 digit card number into ****-****-****-NNNN.
func MaskCardNumber(number string) (string, error) {
	for _, r := range number {
		if r < '0' || r > '9' {
			return "", ErrCardDigits
		}
	}
	if number == "" {
		return "", ErrCardDigits
	}
	if len(number) != 16 {
		return "", ErrCardLength
	}
	return "****-****-****-" + number[12:], nil
}

// CreditCard stores only the masked card number.
type CreditCard struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CardOwner  string `gorm:"size:100;not null" json:"card_owner" validate:"required,max=100"`
	CardNumber string `gorm:"size:20;not null" json:"card_number" validate:"masked_card"`
}

// NewCreditCard masks number for owner.
func NewCreditCard(owner, number string) (*CreditCard, error) {
	masked, err := MaskCardNumber(number)
	if err != nil {
		return nil, validate.NewError("card_number", err.Error())
	}
	return &CreditCard{CardOwner: owner, CardNumber: masked}, nil
}

func (c *CreditCard) BeforeSave(*gorm.DB) error { return validate.Struct(c, nil) }
