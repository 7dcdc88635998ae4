package models

// ShopSettings stores storefront content managed via the admin dashboard.
// There should be only one row (singleton pattern).
type ShopSettings struct {
	BaseModel
	ShopName     string `json:"shop_name"`
	Tagline      string `json:"tagline"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	WorkingHours string `json:"working_hours"`

	// Social links
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`

	FacebookEnabled  bool `json:"facebook_enabled"`
	InstagramEnabled bool `json:"instagram_enabled"`
	TikTokEnabled    bool `json:"tiktok_enabled"`

	AnnouncementText string `json:"announcement_text"`
}
