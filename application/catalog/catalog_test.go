package catalog_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/muhammadheryan/food-delivery/application/catalog"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	redismocks "github.com/muhammadheryan/food-delivery/mocks/repository/redis"
	marketplacemocks "github.com/muhammadheryan/food-delivery/mocks/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogApp_ListMenu(t *testing.T) {
	key := "qc:shared:menu:r1"
	menu := []model.MenuItem{
		{ID: "m1", Name: "Paneer Tikka", Category: "Starters", Stock: 4},
		{ID: "m2", Name: "Chicken Wings", Category: "Starters", Stock: 2},
		{ID: "m3", Name: "Veg Soup", Category: "Soups", Stock: 0},
	}

	t.Run("cache miss fetches and filters", func(t *testing.T) {
		api := marketplacemocks.NewCatalogAPI(t)
		repo := redismocks.NewRepository(t)
		repo.On("GetJSON", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		api.On("ListMenu", mock.Anything, "r1").Return(menu, nil).Once()
		repo.On("SetJSON", mock.Anything, key, menu, time.Minute).Return(nil).Once()

		app := catalog.NewCatalogApp(&config.Config{Cache: config.CacheConfig{TTL: time.Minute}}, api, repo)
		got, err := app.ListMenu(context.Background(), "r1", model.MenuFilter{Diet: "vegetarian", InStockOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "m1", got[0].ID)
	})

	t.Run("cache hit skips the marketplace", func(t *testing.T) {
		api := marketplacemocks.NewCatalogAPI(t)
		repo := redismocks.NewRepository(t)
		repo.On("GetJSON", mock.Anything, key, mock.Anything).
			Run(func(args mock.Arguments) { *args.Get(2).(*[]model.MenuItem) = menu }).
			Return(true, nil).Once()

		app := catalog.NewCatalogApp(&config.Config{}, api, repo)
		got, err := app.ListMenu(context.Background(), "r1", model.MenuFilter{Category: "soups"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "m3", got[0].ID)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		api := marketplacemocks.NewCatalogAPI(t)
		repo := redismocks.NewRepository(t)
		repo.On("GetJSON", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		api.On("ListMenu", mock.Anything, "r1").Return(nil, &marketplace.APIError{StatusCode: http.StatusNotFound}).Once()

		app := catalog.NewCatalogApp(&config.Config{}, api, repo)
		_, err := app.ListMenu(context.Background(), "r1", model.MenuFilter{})
		assert.True(t, cerr.Is(err, constant.ErrNotFound))
	})
}
