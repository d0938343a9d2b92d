package models

import "github.com/uptrace/bun"

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,type:varchar(255),notnull,unique:artists_natural_key" json:"name"`
	City               string   `bun:"city,type:varchar(120),notnull,unique:artists_natural_key" json:"city"`
	State              string   `bun:"state,type:varchar(120),notnull,unique:artists_natural_key" json:"state"`
	Phone              string   `bun:"phone,type:varchar(120),notnull,unique:artists_natural_key" json:"phone"`
	Genres             []string `bun:"genres,type:varchar(500),notnull" json:"genres"`
	FacebookLink       string   `bun:"facebook_link,type:varchar(120),nullzero" json:"facebook_link,omitempty"`
	ImageLink          string   `bun:"image_link,type:varchar(500),nullzero" json:"image_link,omitempty"`
	WebsiteLink        string   `bun:"website_link,type:varchar(500),nullzero" json:"website,omitempty"`
	SeekingVenue       bool     `bun:"seeking_venue,notnull" json:"seeking_venue"`
	SeekingDescription string   `bun:"seeking_description,type:varchar(500),nullzero" json:"seeking_description,omitempty"`

	Shows []*Show `bun:"rel:has-many,join:id=artist_id" json:"-"`
}

func (a *Artist) NaturalKey() map[string]interface{} {
	return map[string]interface{}{
		"name":  a.Name,
		"city":  a.City,
		"state": a.State,
		"phone": a.Phone,
	}
}
