package guild

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the guild drill.
func Exercise() exercise.Exercise {
	models := append(CharacterModels(), &UserProfile{}, &Message{}, &Student{}, &CreditCard{})
	return exercise.Exercise{
		Name:     "guild",
		Summary:  "Multi-table inheritance, messaging helpers and custom fields",
		Models:   models,
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "roster", Run: exercise.NoArgs(Roster)},
			{Name: "send_message", Usage: "<from> <to> <content...>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 3, "send_message <from> <to> <content...>"); err != nil {
					return "", err
				}
				return SendMessage(ctx, db, args[0], args[1], joinFrom(args, 2))
			}},
			{Name: "mark_as_read", Usage: "<message-id>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				return MarkMessageRead(ctx, db, id)
			}},
			{Name: "reply_to_message", Usage: "<message-id> <content...>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				return Reply(ctx, db, id, joinFrom(args, 1))
			}},
			{Name: "forward_message", Usage: "<message-id> <username>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 2, "forward_message <message-id> <username>"); err != nil {
					return "", err
				}
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				return Forward(ctx, db, id, args[1])
			}},
			{Name: "add_student", Usage: "<name> <student-id>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 2, "add_student <name> <student-id>"); err != nil {
					return "", err
				}
				return AddStudent(ctx, db, args[0], args[1])
			}},
			{Name: "add_credit_card", Usage: "<owner> <number>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 2, "add_credit_card <owner> <number>"); err != nil {
					return "", err
				}
				return AddCreditCard(ctx, db, args[0], args[1])
			}},
		},
	}
}

// Populate inserts one character of each leaf class, two users and a
// message between them.
func Populate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	rows := []any{
		&TimeMage{
			Mage:                 &Mage{BaseCharacter: BaseCharacter{Name: "Chronos", Description: "Bends time"}, ElementalPower: "Arcane", SpellbookType: "Temporal"},
			TimeMagicMastery:     "Expert",
			TemporalShiftAbility: "Rewind",
		},
		&Necromancer{
			Mage:             &Mage{BaseCharacter: BaseCharacter{Name: "Morgath", Description: "Commands the dead"}, ElementalPower: "Shadow", SpellbookType: "Grimoire"},
			RaiseDeadAbility: "Raise Skeletons",
		},
		&VipperAssassin{
			Assassin:               &Assassin{BaseCharacter: BaseCharacter{Name: "Viper", Description: "Strikes with venom"}, WeaponType: "Daggers", DemonSlayingAbility: "None"},
			VenomousStrikesMastery: "Master",
			VenomousBiteAbility:    "Venom Bite",
		},
		&ShadowbladeAssassin{
			Assassin:          &Assassin{BaseCharacter: BaseCharacter{Name: "Shade", Description: "Moves through shadows"}, WeaponType: "Blades", DemonSlayingAbility: "Low"},
			ShadowstepAbility: "Shadowstep",
		},
		&FelbladeDemonHunter{
			VengeanceDemonHunter: &VengeanceDemonHunter{
				Assassin:           &Assassin{BaseCharacter: BaseCharacter{Name: "Illidan", Description: "Betrayer"}, WeaponType: "Warglaives", DemonSlayingAbility: "High"},
				VengeanceMastery:   "Grandmaster",
				RetributionAbility: "Retribution",
			},
			FelbladeAbility: "Fel Rush",
		},
		&[]*UserProfile{
			{Username: "alice", Email: "alice@example.com", Bio: "Hello"},
			{Username: "bob", Email: "bob@example.com", Bio: "Hi"},
			{Username: "carol", Email: "carol@example.com", Bio: "Hey"},
		},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			return fmt.Errorf("populating guild: %w", err)
		}
	}
	if err := db.Create(&Message{SenderID: 1, ReceiverID: 2, Content: "Hello, Bob!"}).Error; err != nil {
		return fmt.Errorf("creating message: %w", err)
	}
	return nil
}
