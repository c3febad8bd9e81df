package demo

import (
	"context"
	"io"
	"testing"

	"EventsFinder/internal/config"
	"EventsFinder/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource() *Adapter {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewDemoAdapter(&config.SourceConfig{}, l).(*Adapter)
}

func TestSearchAll(t *testing.T) {
	result := newTestSource().Search(context.Background(), model.SearchFilter{}, model.Credentials{})

	assert.Len(t, result.Events, len(catalogue))
	assert.Equal(t, model.SinglePage(len(catalogue)), result.Pagination)
	assert.Empty(t, result.Message)
}

func TestSearchFilters(t *testing.T) {
	src := newTestSource()
	ctx := context.Background()

	free := src.Search(ctx, model.SearchFilter{Price: model.PriceFree}, model.Credentials{})
	for _, e := range free.Events {
		assert.True(t, e.IsFree, e.Name)
	}
	assert.Len(t, free.Events, 3)

	paid := src.Search(ctx, model.SearchFilter{Price: model.PricePaid}, model.Credentials{})
	assert.Len(t, paid.Events, 2)

	music := src.Search(ctx, model.SearchFilter{Category: "Music"}, model.Credentials{})
	require.Len(t, music.Events, 1)
	assert.Equal(t, "Jazz Live at Blue Note", music.Events[0].Name)

	q := src.Search(ctx, model.SearchFilter{Query: "  YOGA "}, model.Credentials{})
	require.Len(t, q.Events, 1)
	assert.Equal(t, "3", q.Events[0].ID)

	none := src.Search(ctx, model.SearchFilter{Category: "Music", Price: model.PriceFree}, model.Credentials{})
	assert.NotNil(t, none.Events)
	assert.Empty(t, none.Events)
}

func TestSearchReturnsCopies(t *testing.T) {
	src := newTestSource()
	first := src.Search(context.Background(), model.SearchFilter{Category: "Music"}, model.Credentials{})
	require.Len(t, first.Events, 1)
	first.Events[0].Venue.Name = "changed"
	first.Events[0].MinTicketPrice.Value = "0"

	second := src.Search(context.Background(), model.SearchFilter{Category: "Music"}, model.Credentials{})
	assert.Equal(t, "Blue Note Jazz Club", second.Events[0].Venue.Name)
	assert.Equal(t, "45", second.Events[0].MinTicketPrice.Value)
}
