package domain

import "time"

// SavedCreator joins a brand user to a creator profile. The (brand, creator)
// pair is unique.
type SavedCreator struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	BrandID          string    `json:"brand_id" bson:"brand_id"`
	CreatorProfileID string    `json:"creator_profile_id" bson:"creator_profile_id"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// InboxRead marks "user has seen item". Upserted, unique per (user, item).
type InboxRead struct {
	ID     string    `json:"id" bson:"_id,omitempty"`
	UserID string    `json:"user_id" bson:"user_id"`
	ItemID string    `json:"item_id" bson:"item_id"`
	ReadAt time.Time `json:"read_at" bson:"read_at"`
}
