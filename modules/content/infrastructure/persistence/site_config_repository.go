package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/docesofia/storefront/modules/content/domain/siteconfig"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

// The site config is a single row pinned to id 1.
const siteConfigID = 1

type SiteConfigRepository struct{}

func NewSiteConfigRepository() siteconfig.Repository {
	return &SiteConfigRepository{}
}

const siteConfigColumns = `home_banner_url, about_image_url, about_story, social_instagram, social_facebook, social_whatsapp`

func (r *SiteConfigRepository) Get(ctx context.Context) (*siteconfig.Config, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var c siteconfig.Config
	err = tx.QueryRow(ctx, `SELECT `+siteConfigColumns+` FROM site_config WHERE id = $1`, siteConfigID).
		Scan(&c.HomeBannerURL, &c.AboutImageURL, &c.AboutStory, &c.SocialInstagram, &c.SocialFacebook, &c.SocialWhatsapp)
	if errors.Is(err, pgx.ErrNoRows) {
		// Never written yet: the zero config is a valid answer.
		return &siteconfig.Config{}, nil
	}
	if err != nil {
		return nil, serrors.FromPg(err, "site config")
	}
	return &c, nil
}

func (r *SiteConfigRepository) Update(ctx context.Context, data *siteconfig.UpdateData) (*siteconfig.Config, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("home_banner_url", data.HomeBannerURL)
	add("about_image_url", data.AboutImageURL)
	add("about_story", data.AboutStory)
	add("social_instagram", data.SocialInstagram)
	add("social_facebook", data.SocialFacebook)
	add("social_whatsapp", data.SocialWhatsapp)

	if len(set) == 0 {
		return r.Get(ctx)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO site_config (id) VALUES ($1)
ON CONFLICT (id) DO NOTHING`, siteConfigID); err != nil {
		return nil, serrors.FromPg(err, "site config")
	}

	args = append(args, siteConfigID)
	q := fmt.Sprintf(`UPDATE site_config SET %s WHERE id = $%d RETURNING `+siteConfigColumns,
		strings.Join(set, ", "), len(args))
	var c siteconfig.Config
	err = tx.QueryRow(ctx, q, args...).
		Scan(&c.HomeBannerURL, &c.AboutImageURL, &c.AboutStory, &c.SocialInstagram, &c.SocialFacebook, &c.SocialWhatsapp)
	if err != nil {
		return nil, serrors.FromPg(err, "site config")
	}
	return &c, nil
}
