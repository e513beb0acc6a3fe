package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	s3Mocks "resto/infras/s3/mocks"
	menuMocks "resto/internal/domains/menu/mocks"
	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/service"
	cacheMocks "resto/shared/cache/mocks"
	gDto "resto/shared/dto"
	"resto/shared/failure"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgo="

type deps struct {
	repo  *menuMocks.MockMenu
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newService(t *testing.T) (service.Menu, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		repo:  menuMocks.NewMockMenu(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(d.repo, cfg, d.cache, mocks.NewOtel(), d.s3), d
}

// signal returns a channel closed by the first call of the returned func.
func signal() (chan struct{}, func()) {
	done := make(chan struct{})
	closed := false

	return done, func() {
		if !closed {
			closed = true
			close(done)
		}
	}
}

func wait(t *testing.T, done chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async cache call not observed")
	}
}

func TestMenuService_List(t *testing.T) {
	t.Run("invalid category", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.List(context.Background(), dto.ListMenuRequest{Category: "Snacks"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("cache hit", func(t *testing.T) {
		svc, d := newService(t)
		cached := []dto.MenuItemResponse{{ID: "m-1", Name: "Masala Chai"}}

		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*[]dto.MenuItemResponse)) = cached

				return nil
			})

		res, err := svc.List(context.Background(), dto.ListMenuRequest{Category: model.CategoryBeverages})
		require.NoError(t, err)
		assert.Equal(t, cached, res)
	})

	t.Run("cache miss reads repository with filters", func(t *testing.T) {
		svc, d := newService(t)
		vegan := true
		done, finish := signal()

		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.MenuItem, error) {
				assert.Equal(t, "created_at", params.SortBy)
				assert.Len(t, filter.Filters, 2)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "menu_items.category = :category")
				assert.Equal(t, model.CategoryMainCourse, args["category"])
				assert.Equal(t, true, args["is_vegan"])

				return []model.MenuItem{{ID: "m-1", Name: "Chana Masala", Category: model.CategoryMainCourse, IsVegan: true}}, nil
			})
		d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
			DoAndReturn(func(_ context.Context, _ string, _ any, _ int) error {
				finish()

				return nil
			})

		res, err := svc.List(context.Background(), dto.ListMenuRequest{Category: model.CategoryMainCourse, IsVegan: &vegan})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "Chana Masala", res[0].Name)

		wait(t, done)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.List(context.Background(), dto.ListMenuRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestMenuService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), "menu:get:m-404", gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{}, nil)

		_, err := svc.Get(context.Background(), "m-404")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		svc, d := newService(t)
		done, finish := signal()

		d.cache.EXPECT().Get(gomock.Any(), "menu:get:m-1", gomock.Any()).Return(errors.New("cache miss"))
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "m-1", Name: "Gulab Jamun", Price: 15000}, nil)
		d.cache.EXPECT().Save(gomock.Any(), "menu:get:m-1", gomock.Any(), 3600).
			DoAndReturn(func(_ context.Context, _ string, _ any, _ int) error {
				finish()

				return nil
			})

		res, err := svc.Get(context.Background(), "m-1")
		require.NoError(t, err)
		assert.Equal(t, int64(15000), res.Price)

		wait(t, done)
	})
}

func TestMenuService_UpdateImage(t *testing.T) {
	current := model.MenuItem{ID: "m-1", Name: "Paneer Tikka", Image: "https://cdn.example.com/menu/old.png"}

	t.Run("replaces image and removes the previous upload", func(t *testing.T) {
		svc, d := newService(t)
		done, finish := signal()

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.s3.EXPECT().UploadFileBytes(gomock.Any(), "menu", gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/menu/new.png", nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.example.com/menu/new.png", fields[model.FieldImage])

				return nil
			})
		d.s3.EXPECT().GetObjectNameFromURL(current.Image).Return("menu/old.png")
		d.s3.EXPECT().DeleteFile(gomock.Any(), "", "menu/old.png").Return(nil)
		d.cache.EXPECT().Delete(gomock.Any(), "menu:get:m-1").Return(nil)
		d.cache.EXPECT().Clear(gomock.Any(), "menu:list:*").
			DoAndReturn(func(_ context.Context, _ string) error {
				finish()

				return nil
			})

		res, err := svc.UpdateImage(context.Background(), "m-1", dto.UpdateImageRequest{Image: pngDataURL})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/menu/new.png", res.Image)

		wait(t, done)
	})

	t.Run("invalid data url", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := svc.UpdateImage(context.Background(), "m-1", dto.UpdateImageRequest{Image: "not-a-data-url"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("update failure removes the new upload", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.s3.EXPECT().UploadFileBytes(gomock.Any(), "menu", gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/menu/new.png", nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		d.s3.EXPECT().DeleteFile(gomock.Any(), "menu", gomock.Any()).Return(nil)

		_, err := svc.UpdateImage(context.Background(), "m-1", dto.UpdateImageRequest{Image: pngDataURL})
		require.Error(t, err)
	})

	t.Run("missing item", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{}, nil)

		_, err := svc.UpdateImage(context.Background(), "m-1", dto.UpdateImageRequest{Image: pngDataURL})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestMenuService_Seed(t *testing.T) {
	items := []dto.CreateMenuItemRequest{
		{Name: "Butter Chicken", Description: "Creamy tomato curry", Price: 35000, Image: "https://example.com/a.jpg", Category: model.CategoryMainCourse},
		{Name: "Masala Chai", Description: "Spiced tea", Price: 9000, Image: "https://example.com/b.jpg", Category: model.CategoryBeverages},
	}

	t.Run("skips a populated menu", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil)

		n, err := svc.Seed(context.Background(), items)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("inserts into an empty menu", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		d.repo.EXPECT().InsertBulk(gomock.Any(), gomock.Len(2)).Return(nil)
		d.cache.EXPECT().Clear(gomock.Any(), "menu:list:*").Return(nil)

		n, err := svc.Seed(context.Background(), items)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("count failure", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := svc.Seed(context.Background(), items)
		assert.Error(t, err)
	})
}
