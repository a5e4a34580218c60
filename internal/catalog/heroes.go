package catalog

import "gorm.io/gorm"

// MaxEnergy caps every hero's energy.
const MaxEnergy = 100

// Hero is a super hero with an energy budget.
type Hero struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	HeroTitle string `gorm:"size:100;not null" json:"hero_title"`
	Energy    uint   `gorm:"not null" json:"energy"`
}

// RechargeEnergy adds amount to the hero's energy, capped at MaxEnergy, and
// stores the result.
func (h *Hero) RechargeEnergy(db *gorm.DB, amount uint) error {
	if h.Energy >= MaxEnergy || amount >= MaxEnergy-h.Energy {
		h.Energy = MaxEnergy
	} else {
		h.Energy += amount
	}
	return db.Model(h).Update("energy", h.Energy).Error
}

// UseAbility spends cost energy and returns done, never leaving the hero
// below one point. A hero with less than cost energy is untouched and gets
// tired back.
func (h *Hero) UseAbility(cost uint, done, tired string) string {
	if h.Energy < cost {
		return tired
	}
	h.Energy = max(h.Energy-cost, 1)
	return done
}

// SpiderHero is a hero row seen through its web-swinging ability.
type SpiderHero struct {
	Hero
}

func (SpiderHero) TableName() string { return "heroes" }

// SwingFromBuildings costs 80 energy.
func (s *SpiderHero) SwingFromBuildings() string {
	return s.UseAbility(80,
		s.Name+" as Spider Hero swings from buildings using web shooters",
		s.Name+" as Spider Hero is out of web shooter fluid")
}

// FlashHero is a hero row seen through its speed ability.
type FlashHero struct {
	Hero
}

func (FlashHero) TableName() string { return "heroes" }

// RunAtSuperSpeed costs 65 energy.
func (f *FlashHero) RunAtSuperSpeed() string {
	return f.UseAbility(65,
		f.Name+" as Flash Hero runs at lightning speed, saving the day",
		f.Name+" as Flash Hero needs to recharge the speed force")
}
