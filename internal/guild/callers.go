package guild

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
)

type rosterEntry struct {
	class string
	name  string
	power string
}

func rows[T any](db *gorm.DB, preload string, entry func(T) rosterEntry) ([]rosterEntry, error) {
	var list []T
	q := db.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}})
	if preload != "" {
		q = q.Preload(preload)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]rosterEntry, 0, len(list))
	for _, r := range list {
		out = append(out, entry(r))
	}
	return out, nil
}

// Roster lists every character row by class, parents before subclasses.
// A subclass character is listed under its own class and under each parent
// class.
func Roster(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)
	loaders := []func() ([]rosterEntry, error){
		func() ([]rosterEntry, error) {
			return rows(db, "", func(m Mage) rosterEntry { return rosterEntry{"Mage", m.Name, m.ElementalPower} })
		},
		func() ([]rosterEntry, error) {
			return rows(db, "", func(a Assassin) rosterEntry { return rosterEntry{"Assassin", a.Name, a.WeaponType} })
		},
		func() ([]rosterEntry, error) {
			return rows(db, "Mage", func(t TimeMage) rosterEntry { return rosterEntry{"TimeMage", t.Mage.Name, t.TemporalShiftAbility} })
		},
		func() ([]rosterEntry, error) {
			return rows(db, "Mage", func(n Necromancer) rosterEntry { return rosterEntry{"Necromancer", n.Mage.Name, n.RaiseDeadAbility} })
		},
		func() ([]rosterEntry, error) {
			return rows(db, "Assassin", func(v VipperAssassin) rosterEntry {
				return rosterEntry{"VipperAssassin", v.Assassin.Name, v.VenomousBiteAbility}
			})
		},
		func() ([]rosterEntry, error) {
			return rows(db, "Assassin", func(s ShadowbladeAssassin) rosterEntry {
				return rosterEntry{"ShadowbladeAssassin", s.Assassin.Name, s.ShadowstepAbility}
			})
		},
		func() ([]rosterEntry, error) {
			return rows(db, "Assassin", func(v VengeanceDemonHunter) rosterEntry {
				return rosterEntry{"VengeanceDemonHunter", v.Assassin.Name, v.RetributionAbility}
			})
		},
		func() ([]rosterEntry, error) {
			return rows(db, "VengeanceDemonHunter.Assassin", func(f FelbladeDemonHunter) rosterEntry {
				return rosterEntry{"FelbladeDemonHunter", f.VengeanceDemonHunter.Assassin.Name, f.FelbladeAbility}
			})
		},
	}
	var lines []string
	for _, load := range loaders {
		entries, err := load()
		if err != nil {
			return "", fmt.Errorf("loading roster: %w", err)
		}
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("%s: %s (%s)", e.class, e.name, e.power))
		}
	}
	return exercise.Lines(lines), nil
}

func profile(db *gorm.DB, username string) (UserProfile, error) {
	var u UserProfile
	if err := store.First(db.Where("username = ?", username), &u); err != nil {
		return UserProfile{}, fmt.Errorf("user %s: %w", username, err)
	}
	return u, nil
}

func message(db *gorm.DB, id uint) (Message, error) {
	var m Message
	if err := store.First(db.Preload("Sender").Preload("Receiver").Where("id = ?", id), &m); err != nil {
		return Message{}, fmt.Errorf("message %d: %w", id, err)
	}
	return m, nil
}

func describe(db *gorm.DB, m *Message) (string, error) {
	var users []UserProfile
	if err := db.Where("id IN ?", []uint{m.SenderID, m.ReceiverID}).Find(&users).Error; err != nil {
		return "", err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return fmt.Sprintf("Message %d from %s to %s: %s", m.ID, names[m.SenderID], names[m.ReceiverID], m.Content), nil
}

// SendMessage stores a message between two users.
func SendMessage(ctx context.Context, db *gorm.DB, from, to, content string) (string, error) {
	db = db.WithContext(ctx)
	sender, err := profile(db, from)
	if err != nil {
		return "", err
	}
	receiver, err := profile(db, to)
	if err != nil {
		return "", err
	}
	m := &Message{SenderID: sender.ID, ReceiverID: receiver.ID, Content: content}
	if err := db.Omit("Sender", "Receiver").Create(m).Error; err != nil {
		return exercise.Report(err)
	}
	return describe(db, m)
}

// MarkMessageRead marks message id as read.
func MarkMessageRead(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	db = db.WithContext(ctx)
	m, err := message(db, id)
	if err != nil {
		return "", err
	}
	m.MarkAsRead()
	if err := db.Model(&m).Update("is_read", m.IsRead).Error; err != nil {
		return "", fmt.Errorf("marking message %d: %w", id, err)
	}
	return fmt.Sprintf("Message %d read by %s", m.ID, m.Receiver.Username), nil
}

// Reply answers message id.
func Reply(ctx context.Context, db *gorm.DB, id uint, content string) (string, error) {
	db = db.WithContext(ctx)
	m, err := message(db, id)
	if err != nil {
		return "", err
	}
	reply, err := m.ReplyToMessage(db, content)
	if err != nil {
		return exercise.Report(err)
	}
	return describe(db, reply)
}

// Forward passes message id on to username.
func Forward(ctx context.Context, db *gorm.DB, id uint, username string) (string, error) {
	db = db.WithContext(ctx)
	m, err := message(db, id)
	if err != nil {
		return "", err
	}
	to, err := profile(db, username)
	if err != nil {
		return "", err
	}
	fwd, err := m.ForwardMessage(db, &to)
	if err != nil {
		return "", err
	}
	return describe(db, fwd)
}

// AddStudent parses rawID and stores the student.
func AddStudent(ctx context.Context, db *gorm.DB, name, rawID string) (string, error) {
	id, err := ParseStudentID(rawID)
	if err != nil {
		return err.Error(), nil
	}
	s := &Student{Name: name, StudentID: id}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("Student %s with ID %d created", s.Name, s.StudentID), nil
}

// AddCreditCard masks and stores a card.
func AddCreditCard(ctx context.Context, db *gorm.DB, owner, number string) (string, error) {
	c, err := NewCreditCard(owner, number)
	if err == nil {
		err = db.WithContext(ctx).Create(c).Error
	}
	if err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("%s: %s", c.CardOwner, c.CardNumber), nil
}

func joinFrom(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}
