package model

import "time"

type PostModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:varchar(500);not null" json:"description"`
	Category    string    `gorm:"type:varchar(20);not null;index" json:"category"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	UserID      int64     `gorm:"not null" json:"user_id"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (PostModel) TableName() string {
	return "posts"
}
