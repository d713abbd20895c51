package model

import "time"

type Board struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner   User   `gorm:"foreignKey:OwnerID" json:"-"`
	Members []User `gorm:"many2many:board_members;" json:"-"`
}

// MemberIDs returns the ids of the loaded member set.
func (b *Board) MemberIDs() []uint {
	ids := make([]uint, 0, len(b.Members))
	for _, m := range b.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// BoardMember is the join row of the board_members table.
type BoardMember struct {
	BoardID uint `gorm:"primaryKey"`
	UserID  uint `gorm:"primaryKey"`
}

func (BoardMember) TableName() string {
	return "board_members"
}

// BoardStats carries the counters shown on board summaries.
type BoardStats struct {
	MemberCount       int64
	TicketCount       int64
	ToDoCount         int64
	HighPriorityCount int64
}
