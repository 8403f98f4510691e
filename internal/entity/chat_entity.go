package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      *string
	SpaceType  *string
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Message struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	Seq       int64
	Role      string
	Content   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
