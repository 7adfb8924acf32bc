package domain

import "time"

type Link struct {
	ID         int64     `json:"id"`
	Slug       string    `json:"slug"`
	TargetURL  string    `json:"target_url"`
	OwnerID    *int64    `json:"owner_id,omitempty"`
	ClickCount int64     `json:"click_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateLinkRequest struct {
	TargetURL  string `json:"url" validate:"required,url"`
	CustomSlug string `json:"custom_slug,omitempty" validate:"omitempty,min=1,max=32,slug"`
	OwnerID    *int64 `json:"-"`
}
