package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items []*Resource
}

func (f *fakeRepo) GetByID(_ context.Context, kind Kind, id string) (*Resource, error) {
	for _, r := range f.items {
		if r.ID == id && r.Kind == kind {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*Resource, int, error) {
	wanted := make(map[string]bool, len(filter.IDs))
	for _, id := range filter.IDs {
		wanted[id] = true
	}
	var out []*Resource
	for _, r := range f.items {
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if len(wanted) > 0 && !wanted[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func newFakeService() Service {
	return NewService(&fakeRepo{items: []*Resource{
		{ID: "a1", Kind: KindAircraft, Name: "C172 N123AB", Status: StatusAvailable},
		{ID: "a2", Kind: KindAircraft, Name: "PA-28 N456CD", Status: StatusMaintenance},
		{ID: "i1", Kind: KindInstructor, Name: "J. Rivera", Status: StatusAvailable},
	}})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("aircraft")
	require.NoError(t, err)
	assert.Equal(t, KindAircraft, k)

	_, err = ParseKind("simulator")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestColumns(t *testing.T) {
	svc := newFakeService()
	ctx := context.Background()

	t.Run("All of a kind", func(t *testing.T) {
		cols, err := svc.Columns(ctx, KindAircraft, nil)
		require.NoError(t, err)
		require.Len(t, cols, 2)
		assert.Equal(t, "a1", cols[0].ID)
	})

	t.Run("Explicit selection keeps caller order", func(t *testing.T) {
		cols, err := svc.Columns(ctx, KindAircraft, []string{"a2", "a1"})
		require.NoError(t, err)
		require.Len(t, cols, 2)
		assert.Equal(t, "a2", cols[0].ID)
		assert.Equal(t, "a1", cols[1].ID)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := svc.Columns(ctx, KindAircraft, []string{"i1"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Invalid kind", func(t *testing.T) {
		_, err := svc.Columns(ctx, Kind("glider"), nil)
		assert.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestGetByIDMatchesKind(t *testing.T) {
	svc := newFakeService()

	r, err := svc.GetByID(context.Background(), KindInstructor, "i1")
	require.NoError(t, err)
	assert.Equal(t, Key{ID: "i1", Kind: KindInstructor}, r.Key())

	_, err = svc.GetByID(context.Background(), KindAircraft, "i1")
	assert.ErrorIs(t, err, ErrNotFound)
}
