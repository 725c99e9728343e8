package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/market"
)

func TestHandleBrowse(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := new(MockMarketService)
		svc.On("Browse", mock.Anything, market.BrowseQuery{
			ItemType: domain.ItemTypeRod,
			Name:     "fiberglass rod",
			MaxPrice: 500,
			Limit:    10,
		}).Return([]market.Listing{{Name: "Fiberglass Rod"}}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/listings?item_type=rod&name=fiberglass+rod&max_price=500&limit=10", nil)
		NewMarketHandlers(svc).HandleBrowse(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []market.Listing
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got, 1)
	})

	t.Run("bad item type", func(t *testing.T) {
		svc := new(MockMarketService)
		rec := httptest.NewRecorder()
		NewMarketHandlers(svc).HandleBrowse(rec, httptest.NewRequest(http.MethodGet, "/market/listings?item_type=bait", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		svc := new(MockMarketService)
		rec := httptest.NewRecorder()
		NewMarketHandlers(svc).HandleBrowse(rec, httptest.NewRequest(http.MethodGet, "/market/listings?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleMarketBuy(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		users := knownUser()
		svc := new(MockMarketService)
		svc.On("Buy", mock.Anything, testUserID, int64(7)).Return(nil, domain.ErrListingExpired)

		h := userRouter(users, http.MethodPost, "/market/listings/{listingID}/buy", NewMarketHandlers(svc).HandleBuy)
		rec := doJSON(t, h, http.MethodPost, testUserURL+"/market/listings/7/buy", nil)
		assert.Equal(t, http.StatusGone, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		users := knownUser()
		svc := new(MockMarketService)

		h := userRouter(users, http.MethodPost, "/market/listings/{listingID}/buy", NewMarketHandlers(svc).HandleBuy)
		rec := doJSON(t, h, http.MethodPost, testUserURL+"/market/listings/abc/buy", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Buy", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleCreateListing(t *testing.T) {
	InitValidator()
	users := knownUser()
	svc := new(MockMarketService)
	svc.On("List", mock.Anything, testUserID, domain.ItemTypeFish, int64(3), int64(250)).
		Return(&market.Listing{Name: "Salmon"}, nil)

	h := userRouter(users, http.MethodPost, "/market/listings", NewMarketHandlers(svc).HandleCreate)

	rec := doJSON(t, h, http.MethodPost, testUserURL+"/market/listings", CreateListingRequest{ItemType: domain.ItemTypeFish, InstanceID: 3, Price: 250})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, testUserURL+"/market/listings", CreateListingRequest{ItemType: domain.ItemTypeBait, InstanceID: 3, Price: 250})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "List", 1)
}
