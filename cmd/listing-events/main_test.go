package main

import (
	"testing"
	"time"

	"ms-directory/internal/kafka"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	at := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t,
		`venue created id=4 name="The Musical Hop" at 2030-06-01 12:00:00`,
		describe(kafka.ListingEvent{Kind: kafka.KindVenue, Action: kafka.ActionCreated, ID: 4, Name: "The Musical Hop", OccurredAt: at}))

	assert.Equal(t,
		`show deleted id=9 name="-" at 2030-06-01 12:00:00`,
		describe(kafka.ListingEvent{Kind: kafka.KindShow, Action: kafka.ActionDeleted, ID: 9, OccurredAt: at}))
}
