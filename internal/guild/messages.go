package guild

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// UserProfile is a messaging account.
type UserProfile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:70;not null;uniqueIndex" json:"username" validate:"required,max=70"`
	Email    string `gorm:"size:254;not null;uniqueIndex" json:"email" validate:"email"`
	Bio      string `gorm:"type:text;not null" json:"bio"`
}

func (u *UserProfile) BeforeSave(*gorm.DB) error { return validate.Struct(u, nil) }

// Message is sent from one profile to another.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	IsRead    bool      `gorm:"not null" json:"is_read"`

	SenderID   uint         `gorm:"not null;index" json:"sender_id"`
	Sender     *UserProfile `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	ReceiverID uint         `gorm:"not null;index" json:"receiver_id"`
	Receiver   *UserProfile `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (m *Message) BeforeSave(*gorm.DB) error { return validate.Struct(m, nil) }

// MarkAsRead flags the message as read. The caller saves it.
func (m *Message) MarkAsRead() {
	m.IsRead = true
}

// ReplyToMessage stores a new message from this message's receiver back to
// its sender.
func (m *Message) ReplyToMessage(db *gorm.DB, content string) (*Message, error) {
	reply := &Message{SenderID: m.ReceiverID, ReceiverID: m.SenderID, Content: content}
	if err := db.Omit("Sender", "Receiver").Create(reply).Error; err != nil {
		return nil, fmt.Errorf("replying to message %d: %w", m.ID, err)
	}
	return reply, nil
}

// ForwardMessage stores a copy of the message sent by this message's
// receiver to receiver.
func (m *Message) ForwardMessage(db *gorm.DB, receiver *UserProfile) (*Message, error) {
	fwd := &Message{SenderID: m.ReceiverID, ReceiverID: receiver.ID, Content: m.Content}
	if err := db.Omit("Sender", "Receiver").Create(fwd).Error; err != nil {
		return nil, fmt.Errorf("forwarding message %d: %w", m.ID, err)
	}
	return fwd, nil
}
