package siteconfig

import "context"

// Config is the site-wide content block managed from the back office. It is
// a singleton: there is exactly one row and updates merge into it.
type Config struct {
	HomeBannerURL   string `json:"homeBannerUrl"`
	AboutImageURL   string `json:"aboutImageUrl"`
	AboutStory      string `json:"aboutStory"`
	SocialInstagram string `json:"socialInstagram"`
	SocialFacebook  string `json:"socialFacebook"`
	SocialWhatsapp  string `json:"socialWhatsapp"`
}

// UpdateData is a partial merge: nil fields are left untouched.
type UpdateData struct {
	HomeBannerURL   *string `json:"homeBannerUrl"`
	AboutImageURL   *string `json:"aboutImageUrl"`
	AboutStory      *string `json:"aboutStory"`
	SocialInstagram *string `json:"socialInstagram"`
	SocialFacebook  *string `json:"socialFacebook"`
	SocialWhatsapp  *string `json:"socialWhatsapp"`
}

type Repository interface {
	// Get returns the singleton config, zero-valued when never written.
	Get(ctx context.Context) (*Config, error)
	// Update merges the non-nil fields of data into the stored config.
	Update(ctx context.Context, data *UpdateData) (*Config, error)
}
