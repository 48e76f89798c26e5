package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group membership roles.
const (
	GroupRoleCreator = "creator"
	GroupRoleMember  = "member"
)

// DefaultGroupCapacity is the nominal member cap for a study group.
const DefaultGroupCapacity = 3

// StudyGroup is a small student-created collaboration room joined via invite code.
type StudyGroup struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	InviteCode string    `gorm:"size:12;not null;uniqueIndex" json:"invite_code"`
	CreatorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	MaxMembers int       `gorm:"not null;default:3" json:"max_members"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (g *StudyGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroupMember is the membership record tying a student to a study group.
type GroupMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index:idx_group_student" json:"group_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_group_student" json:"student_id"`
	Role      string    `gorm:"size:16;not null;default:member" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	JoinedAt  time.Time `json:"joined_at"`
}

func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ChatMessage is an append-only message within a study group.
type ChatMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	MessageText string    `gorm:"type:text" json:"message_text"`
	MessageType string    `gorm:"size:16;not null;default:text" json:"message_type"`
	EmojiCode   string    `gorm:"size:32" json:"emoji_code"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
