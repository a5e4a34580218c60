// Package guild is the model inheritance drill: a character class tree
// stored one table per class, user messages and two custom field types.
package guild

import (
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// BaseCharacter holds the fields every root class carries.
type BaseCharacter struct {
	Name        string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description string `gorm:"type:text;not null" json:"description"`
}

// Mage is a root class.
type Mage struct {
	ID uint `gorm:"primaryKey" json:"id"`
	BaseCharacter
	ElementalPower string `gorm:"size:100;not null" json:"elemental_power" validate:"max=100"`
	SpellbookType  string `gorm:"size:100;not null" json:"spellbook_type" validate:"max=100"`
}

func (m *Mage) BeforeSave(*gorm.DB) error { return validate.Struct(m, nil) }

// Assassin is a root class.
type Assassin struct {
	ID uint `gorm:"primaryKey" json:"id"`
	BaseCharacter
	WeaponType          string `gorm:"size:100;not null" json:"weapon_type" validate:"max=100"`
	DemonSlayingAbility string `gorm:"size:100;not null" json:"demon_slaying_ability" validate:"max=100"`
}

func (a *Assassin) BeforeSave(*gorm.DB) error { return validate.Struct(a, nil) }

// Subclasses share their parent's primary key. Creating a subclass row with
// its parent set inserts the parent first in the same transaction.

// TimeMage extends Mage.
type TimeMage struct {
	MageID               uint   `gorm:"primaryKey;autoIncrement:false" json:"mage_id"`
	Mage                 *Mage  `gorm:"foreignKey:MageID;constraint:OnDelete:CASCADE" json:"mage,omitempty" validate:"-"`
	TimeMagicMastery     string `gorm:"size:100;not null" json:"time_magic_mastery" validate:"max=100"`
	TemporalShiftAbility string `gorm:"size:100;not null" json:"temporal_shift_ability" validate:"max=100"`
}

// Necromancer extends Mage.
type Necromancer struct {
	MageID           uint   `gorm:"primaryKey;autoIncrement:false" json:"mage_id"`
	Mage             *Mage  `gorm:"foreignKey:MageID;constraint:OnDelete:CASCADE" json:"mage,omitempty" validate:"-"`
	RaiseDeadAbility string `gorm:"size:100;not null" json:"raise_dead_ability" validate:"max=100"`
}

// VipperAssassin extends Assassin.
type VipperAssassin struct {
	AssassinID             uint      `gorm:"primaryKey;autoIncrement:false" json:"assassin_id"`
	Assassin               *Assassin `gorm:"foreignKey:AssassinID;constraint:OnDelete:CASCADE" json:"assassin,omitempty" validate:"-"`
	VenomousStrikesMastery string    `gorm:"size:100;not null" json:"venomous_strikes_mastery" validate:"max=100"`
	VenomousBiteAbility    string    `gorm:"size:100;not null" json:"venomous_bite_ability" validate:"max=100"`
}

// ShadowbladeAssassin extends Assassin.
type ShadowbladeAssassin struct {
	AssassinID        uint      `gorm:"primaryKey;autoIncrement:false" json:"assassin_id"`
	Assassin          *Assassin `gorm:"foreignKey:AssassinID;constraint:OnDelete:CASCADE" json:"assassin,omitempty" validate:"-"`
	ShadowstepAbility string    `gorm:"size:100;not null" json:"shadowstep_ability" validate:"max=100"`
}

// VengeanceDemonHunter extends Assassin.
type VengeanceDemonHunter struct {
	AssassinID         uint      `gorm:"primaryKey;autoIncrement:false" json:"assassin_id"`
	Assassin           *Assassin `gorm:"foreignKey:AssassinID;constraint:OnDelete:CASCADE" json:"assassin,omitempty" validate:"-"`
	VengeanceMastery   string    `gorm:"size:100;not null" json:"vengeance_mastery" validate:"max=100"`
	RetributionAbility string    `gorm:"size:100;not null" json:"retribution_ability" validate:"max=100"`
}

// FelbladeDemonHunter extends VengeanceDemonHunter.
type FelbladeDemonHunter struct {
	VengeanceDemonHunterID uint                  `gorm:"primaryKey;autoIncrement:false" json:"vengeance_demon_hunter_id"`
	VengeanceDemonHunter   *VengeanceDemonHunter `gorm:"foreignKey:VengeanceDemonHunterID;references:AssassinID;constraint:OnDelete:CASCADE" json:"vengeance_demon_hunter,omitempty" validate:"-"`
	FelbladeAbility        string                `gorm:"size:100;not null" json:"felblade_ability" validate:"max=100"`
}

func (t *TimeMage) BeforeSave(*gorm.DB) error { return validate.Struct(t, nil) }

func (n *Necromancer) BeforeSave(*gorm.DB) error { return validate.Struct(n, nil) }

func (v *VipperAssassin) BeforeSave(*gorm.DB) error { return validate.Struct(v, nil) }

func (s *ShadowbladeAssassin) BeforeSave(*gorm.DB) error { return validate.Struct(s, nil) }

func (v *VengeanceDemonHunter) BeforeSave(*gorm.DB) error { return validate.Struct(v, nil) }

func (f *FelbladeDemonHunter) BeforeSave(*gorm.DB) error { return validate.Struct(f, nil) }

// CharacterModels lists the class tables, parents first.
func CharacterModels() []any {
	return []any{
		&Mage{}, &Assassin{},
		&TimeMage{}, &Necromancer{},
		&VipperAssassin{}, &ShadowbladeAssassin{}, &VengeanceDemonHunter{},
		&FelbladeDemonHunter{},
	}
}
