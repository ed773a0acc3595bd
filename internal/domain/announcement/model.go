package announcement

import (
	"context"
	"time"
)

const (
	CategoryBreaking = "ข่าวด่วน"
	CategoryActivity = "กิจกรรม"
	CategoryGeneral  = "ประกาศทั่วไป"
	CategoryCouncil  = "ผลงานสภา"
)

var Categories = []string{CategoryBreaking, CategoryActivity, CategoryGeneral, CategoryCouncil}

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  *string   `json:"image_url,omitempty"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Filter struct {
	Category string
	Query    string
}

// Repository lists pinned announcements first, newest first within each group.
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id int64) (*Announcement, error)
	List(ctx context.Context, f Filter) ([]Announcement, error)
	Update(ctx context.Context, a *Announcement) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
	Delete(ctx context.Context, id int64) error
}
