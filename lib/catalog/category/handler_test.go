package categoryhandler

import (
	"errors"
	"net/http"
	categorystore "quotation-backend/lib/catalog/category/store"
	apimodels "quotation-backend/models/api"
	dbmodels "quotation-backend/models/db"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	categorystore.Provider
	recs     map[uint]dbmodels.Category
	products map[uint]int64
	deleted  []uint
}

func (s *fakeStore) GetByID(id uint) (*dbmodels.Category, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *fakeStore) ProductCount(id uint) (int64, error) {
	return s.products[id], nil
}

func (s *fakeStore) Delete(id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) List() ([]dbmodels.Category, error) {
	return []dbmodels.Category{s.recs[1], s.recs[2]}, nil
}

func newTestHandler() (impl, *fakeStore) {
	store := &fakeStore{
		recs: map[uint]dbmodels.Category{
			1: {BaseModel: dbmodels.BaseModel{ID: 1}, Name: "Cámaras"},
			2: {BaseModel: dbmodels.BaseModel{ID: 2}, Name: "Redes"},
		},
		products: map[uint]int64{1: 3},
	}
	return impl{store: store}, store
}

func TestDelete(t *testing.T) {
	t.Run("category with products is protected", func(t *testing.T) {
		h, store := newTestHandler()
		err := h.Delete(1)
		var coded apimodels.CodedError
		require.True(t, errors.As(err, &coded))
		require.Equal(t, http.StatusConflict, coded.HttpStatus)
		require.Equal(t, apimodels.CodeCategoryHasProducts, coded.Code)
		require.Empty(t, store.deleted)
	})
	t.Run("empty category deleted", func(t *testing.T) {
		h, store := newTestHandler()
		require.Nil(t, h.Delete(2))
		require.Equal(t, []uint{2}, store.deleted)
	})
	t.Run("unknown category", func(t *testing.T) {
		h, _ := newTestHandler()
		err := h.Delete(5)
		var coded apimodels.CodedError
		require.True(t, errors.As(err, &coded))
		require.Equal(t, apimodels.CodeNotFound, coded.Code)
	})
}

func TestList(t *testing.T) {
	h, _ := newTestHandler()
	list, err := h.List()
	require.Nil(t, err)
	require.Len(t, list, 2)
	require.Equal(t, int64(3), list[0].CantidadProductos)
	require.Equal(t, int64(0), list[1].CantidadProductos)
}

func TestListCache(t *testing.T) {
	t.Run("list served from cache until reset", func(t *testing.T) {
		h, store := newTestHandler()
		h.cache = cache.New(time.Minute, time.Minute)
		_, err := h.List()
		require.Nil(t, err)
		store.products[2] = 7

		list, err := h.List()
		require.Nil(t, err)
		require.Equal(t, int64(0), list[1].CantidadProductos)

		h.ResetCache()
		list, err = h.List()
		require.Nil(t, err)
		require.Equal(t, int64(7), list[1].CantidadProductos)
	})
	t.Run("delete resets cache", func(t *testing.T) {
		h, store := newTestHandler()
		h.cache = cache.New(time.Minute, time.Minute)
		_, err := h.List()
		require.Nil(t, err)
		store.products[1] = 0
		require.Nil(t, h.Delete(1))

		list, err := h.List()
		require.Nil(t, err)
		require.Equal(t, int64(0), list[0].CantidadProductos)
	})
}
