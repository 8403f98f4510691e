package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Chat role values. Role is fixed at message creation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Space types a chat can be tagged with.
const (
	SpaceInterior = "interior"
	SpaceExterior = "exterior"
)

type Chat struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"` // immutable after creation
	Title      *string   `gorm:"type:text"`
	SpaceType  *string   `gorm:"type:varchar(50)"`
	IsArchived bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Chat) TableName() string {
	return "chats"
}

// Message is append-only: rows are inserted once and never edited.
// Seq is a table-wide serial used to break created_at ties in insertion order.
type Message struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Seq       int64          `gorm:"not null;autoIncrement;uniqueIndex"`
	Role      string         `gorm:"type:varchar(50);not null"`
	Content   string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`

	Chat Chat `gorm:"foreignKey:ChatId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Message) TableName() string {
	return "messages"
}
