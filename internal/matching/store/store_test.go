package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vetclinic/internal/database/dbtest"
	"github.com/MrJamesThe3rd/vetclinic/internal/matching"
	"github.com/MrJamesThe3rd/vetclinic/internal/matching/store"
)

func TestStore_FindMatchSeeded(t *testing.T) {
	s := store.New(dbtest.Open(t))
	ctx := context.Background()

	for raw, want := range map[string]string{
		"Cash":           "Cash",
		"DEBIT CARD":     "Card",
		"paytm wallet":   "UPI",
		"NEFT transfer":  "Bank Transfer",
		"store credits":  "Credits",
		"something else": "",
	} {
		got, err := s.FindMatch(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, want, got, raw)
	}
}

func TestStore_SaveMappingUpserts(t *testing.T) {
	s := store.New(dbtest.Open(t))
	ctx := context.Background()

	t.Cleanup(func() {
		s.SaveMapping(context.Background(), matching.Mapping{RawPattern: "cash", Method: "Cash"})
	})

	require.NoError(t, s.SaveMapping(ctx, matching.Mapping{RawPattern: "cash", Method: "Cash (till)"}))

	got, err := s.FindMatch(ctx, "cash")
	require.NoError(t, err)
	assert.Equal(t, "Cash (till)", got)

	mappings, err := s.ListMappings(ctx)
	require.NoError(t, err)
	assert.Contains(t, mappings, matching.Mapping{RawPattern: "cash", Method: "Cash (till)"})
}
