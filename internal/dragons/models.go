// Package dragons is the third prep exam drill: noble houses, their dragons
// and the quests they host.
package dragons

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Breath types.
const (
	BreathFire      = "Fire"
	BreathIce       = "Ice"
	BreathLightning = "Lightning"
	BreathUnknown   = "Unknown"
)

func init() {
	validate.RegisterRegex("quest_code", `^[A-Za-z#]{4}$`, "Enter a valid value.")
}

// House is a noble house.
type House struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:80;not null;uniqueIndex" json:"name" validate:"min=5,max=80"`
	Motto      *string   `json:"motto"`
	IsRuling   bool      `gorm:"not null" json:"is_ruling"`
	Castle     *string   `gorm:"size:80" json:"castle" validate:"omitempty,max=80"`
	Wins       int16     `gorm:"not null;default:0" json:"wins"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}

func (h *House) BeforeSave(*gorm.DB) error {
	return validate.Struct(h, nil)
}

// Dragon belongs to a house. IsHealthy defaults to true when left nil.
type Dragon struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:80;not null;uniqueIndex" json:"name" validate:"min=5,max=80"`
	Power      decimal.Decimal `gorm:"type:decimal(3,1);not null" json:"power" validate:"gte=1,lte=10,decimal=3:1"`
	Breath     string          `gorm:"size:9;not null;default:Unknown" json:"breath" validate:"oneof=Fire Ice Lightning Unknown"`
	IsHealthy  *bool           `gorm:"not null;default:true" json:"is_healthy"`
	BirthDate  datatypes.Date  `gorm:"not null" json:"birth_date"`
	Wins       int16           `gorm:"not null;default:0" json:"wins"`
	ModifiedAt time.Time       `gorm:"autoUpdateTime" json:"modified_at"`

	HouseID uint   `gorm:"not null;index" json:"house_id"`
	House   *House `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (d *Dragon) BeforeSave(*gorm.DB) error {
	if d.Power.IsZero() {
		d.Power = decimal.NewFromInt(1)
	}
	if d.Breath == "" {
		d.Breath = BreathUnknown
	}
	if time.Time(d.BirthDate).IsZero() {
		d.BirthDate = exercise.Today()
	}
	return validate.Struct(d, nil)
}

// Healthy reports the dragon's health, treating an unset flag as healthy.
func (d *Dragon) Healthy() bool {
	return d.IsHealthy == nil || *d.IsHealthy
}

// Quest is hosted by a house and joined by dragons.
type Quest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:80;not null;uniqueIndex" json:"name" validate:"min=5,max=80"`
	Code       string    `gorm:"size:4;not null;uniqueIndex" json:"code" validate:"quest_code"`
	Reward     float64   `gorm:"not null;default:100" json:"reward"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`

	Dragons []Dragon `gorm:"many2many:quest_dragons;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	HostID  uint     `gorm:"not null;index" json:"host_id"`
	Host    *House   `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (q *Quest) BeforeSave(*gorm.DB) error {
	return validate.Struct(q, nil)
}

// HouseDragons is a house annotated with its number of dragons.
type HouseDragons struct {
	House
	TotalDragons int64 `json:"total_dragons"`
}

// HousesByDragonsCount lists houses by dragon count, most first, then by
// name.
func HousesByDragonsCount(db *gorm.DB) ([]HouseDragons, error) {
	var rows []HouseDragons
	err := db.Model(&House{}).
		Select("houses.*, COUNT(dragons.id) AS total_dragons").
		Joins("LEFT JOIN dragons ON dragons.house_id = houses.id").
		Group("houses.id").
		Order("total_dragons DESC, houses.name").
		Scan(&rows).Error
	return rows, err
}
