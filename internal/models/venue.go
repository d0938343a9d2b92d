package models

import "github.com/uptrace/bun"

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,type:varchar(255),notnull,unique:venues_natural_key" json:"name"`
	City               string   `bun:"city,type:varchar(120),notnull,unique:venues_natural_key" json:"city"`
	State              string   `bun:"state,type:varchar(120),notnull,unique:venues_natural_key" json:"state"`
	Address            string   `bun:"address,type:varchar(120),notnull,unique:venues_natural_key" json:"address"`
	Phone              string   `bun:"phone,type:varchar(120),notnull,unique:venues_natural_key" json:"phone"`
	Genres             []string `bun:"genres,type:varchar(500),notnull" json:"genres"`
	FacebookLink       string   `bun:"facebook_link,type:varchar(120),nullzero" json:"facebook_link,omitempty"`
	ImageLink          string   `bun:"image_link,type:varchar(500),nullzero" json:"image_link,omitempty"`
	WebsiteLink        string   `bun:"website_link,type:varchar(500),nullzero" json:"website,omitempty"`
	SeekingTalent      bool     `bun:"seeking_talent,notnull" json:"seeking_talent"`
	SeekingDescription string   `bun:"seeking_description,type:varchar(500),nullzero" json:"seeking_description,omitempty"`

	Shows []*Show `bun:"rel:has-many,join:id=venue_id" json:"-"`
}

// NaturalKey is the column set that identifies a duplicate venue.
func (v *Venue) NaturalKey() map[string]interface{} {
	return map[string]interface{}{
		"name":    v.Name,
		"city":    v.City,
		"state":   v.State,
		"address": v.Address,
		"phone":   v.Phone,
	}
}
