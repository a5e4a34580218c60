package dataops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// everything lifts the guard against unfiltered set updates and deletes and
// skips hooks.
func everything(db *gorm.DB) *gorm.DB {
	return store.Bulk(db).Session(&gorm.Session{AllowGlobalUpdate: true})
}

// CreatePet stores a pet.
func CreatePet(ctx context.Context, db *gorm.DB, name, species string) (string, error) {
	p := &Pet{Name: name, Species: species}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("%s is a very cute %s!", p.Name, p.Species), nil
}

// CreateArtifact stores an artifact.
func CreateArtifact(ctx context.Context, db *gorm.DB, a *Artifact) (string, error) {
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return exercise.Report(store.TranslateError(err))
	}
	return fmt.Sprintf("The artifact %s is %d years old!", a.Name, a.Age), nil
}

// RenameArtifact renames a magical artifact older than 250 years and
// reports whether it did.
func RenameArtifact(ctx context.Context, db *gorm.DB, a *Artifact, newName string) (bool, error) {
	if !a.IsMagical || a.Age <= 250 {
		return false, nil
	}
	a.Name = newName
	if err := db.WithContext(ctx).Save(a).Error; err != nil {
		return false, fmt.Errorf("renaming artifact %d: %w", a.ID, store.TranslateError(err))
	}
	return true, nil
}

// DeleteAllArtifacts removes every artifact.
func DeleteAllArtifacts(ctx context.Context, db *gorm.DB) (int64, error) {
	res := everything(db.WithContext(ctx)).Delete(&Artifact{})
	return res.RowsAffected, res.Error
}

// ShowAllLocations lists locations newest first.
func ShowAllLocations(ctx context.Context, db *gorm.DB) (string, error) {
	var ls []Location
	if err := db.WithContext(ctx).Order("id DESC").Find(&ls).Error; err != nil {
		return "", fmt.Errorf("listing locations: %w", err)
	}
	lines := make([]string, 0, len(ls))
	for _, l := range ls {
		lines = append(lines, fmt.Sprintf("%s has a population of %d", l.Name, l.Population))
	}
	return exercise.Lines(lines), nil
}

// NewCapital makes the first location a capital.
func NewCapital(ctx context.Context, db *gorm.DB) error {
	var l Location
	if err := store.First(db.WithContext(ctx).Order("id"), &l); err != nil {
		return fmt.Errorf("first location: %w", err)
	}
	l.IsCapital = true
	return db.WithContext(ctx).Save(&l).Error
}

// GetCapitals returns the name of the first capital, or "" when there is
// none.
func GetCapitals(ctx context.Context, db *gorm.DB) (string, error) {
	var l Location
	err := store.First(db.WithContext(ctx).Where("is_capital = ?", true).Order("id"), &l)
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("finding capital: %w", err)
	}
	return l.Name, nil
}

// DeleteFirstLocation removes the location with the lowest id.
func DeleteFirstLocation(ctx context.Context, db *gorm.DB) error {
	var l Location
	if err := store.First(db.WithContext(ctx).Order("id"), &l); err != nil {
		return fmt.Errorf("first location: %w", err)
	}
	return db.WithContext(ctx).Delete(&l).Error
}

// RecentCar is a car model with its discounted price.
type RecentCar struct {
	Model             string
	PriceWithDiscount decimal.Decimal
}

// GetRecentCars returns cars made in 2020 or later.
func GetRecentCars(ctx context.Context, db *gorm.DB) ([]RecentCar, error) {
	var cars []RecentCar
	err := db.WithContext(ctx).Model(&Car{}).Select("model", "price_with_discount").
		Where("year >= ?", 2020).Order("id").Scan(&cars).Error
	return cars, err
}

// DigitSum adds up the digits of the integer part of price.
func DigitSum(price decimal.Decimal) int64 {
	var sum int64
	for _, r := range price.Truncate(0).Abs().String() {
		sum += int64(r - '0')
	}
	return sum
}

// DiscountedPrice takes DigitSum(price) percent off price.
func DiscountedPrice(price decimal.Decimal) decimal.Decimal {
	percent := decimal.NewFromInt(DigitSum(price)).Div(decimal.NewFromInt(100))
	return price.Sub(price.Mul(percent)).Round(2)
}

// ApplyDiscount sets the discounted price of every car.
func ApplyDiscount(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cars []Car
		if err := tx.Order("id").Find(&cars).Error; err != nil {
			return err
		}
		for i := range cars {
			cars[i].PriceWithDiscount = DiscountedPrice(cars[i].Price)
			if err := tx.Save(&cars[i]).Error; err != nil {
				return fmt.Errorf("discounting car %d: %w", cars[i].ID, err)
			}
		}
		return nil
	})
}

// DeleteLastCar removes the car with the highest id.
func DeleteLastCar(ctx context.Context, db *gorm.DB) error {
	var c Car
	if err := store.First(db.WithContext(ctx).Order("id DESC"), &c); err != nil {
		return fmt.Errorf("last car: %w", err)
	}
	return db.WithContext(ctx).Delete(&c).Error
}

// ShowUnfinishedTasks lists the tasks still open.
func ShowUnfinishedTasks(ctx context.Context, db *gorm.DB) (string, error) {
	var ts []Task
	if err := db.WithContext(ctx).Where("is_finished = ?", false).Order("id").Find(&ts).Error; err != nil {
		return "", fmt.Errorf("listing tasks: %w", err)
	}
	lines := make([]string, 0, len(ts))
	for _, t := range ts {
		lines = append(lines, fmt.Sprintf("Task - %s needs to be done until %s!", t.Title, exercise.FormatDate(t.DueDate)))
	}
	return exercise.Lines(lines), nil
}

// CompleteOddTasks finishes every task with an odd id.
func CompleteOddTasks(ctx context.Context, db *gorm.DB) (int64, error) {
	res := store.Bulk(db.WithContext(ctx)).Model(&Task{}).Where("id % 2 = 1").UpdateColumn("is_finished", true)
	return res.RowsAffected, res.Error
}

// ErrEncoding is returned when a character cannot be shifted.
var ErrEncoding = errors.New("text cannot be encoded")

// Encode shifts every character of text three code points down.
func Encode(text string) (string, error) {
	var b strings.Builder
	for _, r := range text {
		shifted := r - 3
		if shifted < 0 || !utf8.ValidRune(shifted) {
			return "", fmt.Errorf("%w: %q", ErrEncoding, r)
		}
		b.WriteRune(shifted)
	}
	return b.String(), nil
}

// EncodeAndReplace stores the encoded text as the description of every task
// titled title.
func EncodeAndReplace(ctx context.Context, db *gorm.DB, text, title string) (int64, error) {
	encoded, err := Encode(text)
	if err != nil {
		return 0, err
	}
	res := store.Bulk(db.WithContext(ctx)).Model(&Task{}).Where("title = ?", title).UpdateColumn("description", encoded)
	return res.RowsAffected, res.Error
}

// GetDeluxeRoom describes the deluxe rooms with an even id.
func GetDeluxeRoom(ctx context.Context, db *gorm.DB) (string, error) {
	var rs []HotelRoom
	err := db.WithContext(ctx).Where("room_type = ? AND id % 2 = 0", RoomDeluxe).Order("id").Find(&rs).Error
	if err != nil {
		return "", fmt.Errorf("listing deluxe rooms: %w", err)
	}
	lines := make([]string, 0, len(rs))
	for _, r := range rs {
		lines = append(lines, fmt.Sprintf("Deluxe room with number %d costs %s$ per night!", r.RoomNumber, r.PricePerNight.StringFixed(2)))
	}
	return exercise.Lines(lines), nil
}

// IncreaseRoomCapacity grows reserved rooms in id order: the first by its
// own id, each next one by the new capacity of the room before it.
func IncreaseRoomCapacity(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rs []HotelRoom
		if err := tx.Where("is_reserved = ?", true).Order("id").Find(&rs).Error; err != nil {
			return err
		}
		for i := range rs {
			if i == 0 {
				rs[i].Capacity += rs[i].ID
			} else {
				rs[i].Capacity += rs[i-1].Capacity
			}
			if err := tx.Model(&rs[i]).Update("capacity", rs[i].Capacity).Error; err != nil {
				return fmt.Errorf("resizing room %d: %w", rs[i].ID, err)
			}
		}
		return nil
	})
}

// ReserveFirstRoom reserves every free room.
func ReserveFirstRoom(ctx context.Context, db *gorm.DB) (int64, error) {
	res := store.Bulk(db.WithContext(ctx)).Model(&HotelRoom{}).Where("is_reserved = ?", false).UpdateColumn("is_reserved", true)
	return res.RowsAffected, res.Error
}

// DeleteLastRoom deletes every free room.
func DeleteLastRoom(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Where("is_reserved = ?", false).Delete(&HotelRoom{})
	return res.RowsAffected, res.Error
}

// UpdateCharacters levels up mages, halves warriors' hit points and empties
// the inventory of assassins and scouts.
func UpdateCharacters(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cs []Character
		if err := tx.Order("id").Find(&cs).Error; err != nil {
			return err
		}
		for i := range cs {
			c := &cs[i]
			switch c.ClassName {
			case ClassMage:
				c.Level += 3
				c.Intelligence -= min(c.Intelligence, 7)
			case ClassWarrior:
				c.HitPoints /= 2
				c.Dexterity += 4
			case ClassAssassin, ClassScout:
				c.Inventory = EmptyInventory
			default:
				continue
			}
			if err := tx.Save(c).Error; err != nil {
				return fmt.Errorf("updating character %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

// Fuse merges two characters into one new Fusion character.
func Fuse(first, second Character) Character {
	inventory := "Dragon Scale Armor, Excalibur"
	if first.ClassName == ClassMage || first.ClassName == ClassScout {
		inventory = "Bow of the Elven Lords, Amulet of Eternal Wisdom"
	}
	return Character{
		Name:         first.Name + " " + second.Name,
		ClassName:    ClassFusion,
		Level:        (first.Level + second.Level) / 2,
		Strength:     boosted(first.Strength+second.Strength, 1.2),
		Dexterity:    boosted(first.Dexterity+second.Dexterity, 1.4),
		Intelligence: boosted(first.Intelligence+second.Intelligence, 1.5),
		HitPoints:    first.HitPoints + second.HitPoints,
		Inventory:    inventory,
	}
}

// boosted scales a stat in binary floating point and truncates, so a sum of
// 45 boosted by 1.4 yields 62, not 63.
func boosted(sum uint, factor float64) uint {
	return uint(float64(sum) * factor)
}

// FuseCharacters replaces characters firstID and secondID with their fusion.
func FuseCharacters(ctx context.Context, db *gorm.DB, firstID, secondID uint) (*Character, error) {
	var fused Character
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var first, second Character
		if err := store.First(tx.Where("id = ?", firstID), &first); err != nil {
			return fmt.Errorf("character %d: %w", firstID, err)
		}
		if err := store.First(tx.Where("id = ?", secondID), &second); err != nil {
			return fmt.Errorf("character %d: %w", secondID, err)
		}
		fused = Fuse(first, second)
		if err := tx.Delete(&Character{}, []uint{firstID, secondID}).Error; err != nil {
			return err
		}
		return tx.Create(&fused).Error
	})
	if err != nil {
		return nil, err
	}
	return &fused, nil
}

func grant(ctx context.Context, db *gorm.DB, column string, value uint) (int64, error) {
	res := everything(db.WithContext(ctx)).Model(&Character{}).UpdateColumn(column, value)
	return res.RowsAffected, res.Error
}

// GrandDexterity sets every character's dexterity to 30.
func GrandDexterity(ctx context.Context, db *gorm.DB) (int64, error) {
	return grant(ctx, db, "dexterity", 30)
}

// GrandIntelligence sets every character's intelligence to 40.
func GrandIntelligence(ctx context.Context, db *gorm.DB) (int64, error) {
	return grant(ctx, db, "intelligence", 40)
}

// GrandStrength sets every character's strength to 50.
func GrandStrength(ctx context.Context, db *gorm.DB) (int64, error) {
	return grant(ctx, db, "strength", 50)
}

// DeleteCharacters removes characters whose inventory was emptied.
func DeleteCharacters(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Where("inventory = ?", EmptyInventory).Delete(&Character{})
	return res.RowsAffected, res.Error
}
