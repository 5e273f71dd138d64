package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestListServicesWithoutShop(t *testing.T) {
	env := setupRouter(t)

	w := env.do(jsonRequest(http.MethodGet, "/api/services", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, "shop_not_found", resp["error_code"])
	assert.Equal(t, []any{}, resp["services"])
}

func TestListServicesIncludesAppointmentIDs(t *testing.T) {
	env := setupRouter(t)
	shop := seedShop(t, env.db, "Chop Clock", svc("Fade", "30", 30), svc("Shave", "20", 15))
	_, token := env.userToken(t)

	w := env.do(authRequest(http.MethodPost, "/api/appointments", bookingBody(shop.Services[0].ID.String()), token))
	require.Equal(t, http.StatusCreated, w.Code)
	booked := parseResponse(t, w)["id"]

	w = env.do(jsonRequest(http.MethodGet, "/api/services", nil))
	require.Equal(t, http.StatusOK, w.Code)

	list := parseList(t, w)
	require.Len(t, list, 2)
	byName := map[string]map[string]any{}
	for _, s := range list {
		byName[s["name"].(string)] = s
	}
	assert.Equal(t, []any{booked}, byName["Fade"]["appointmentIds"])
	assert.Equal(t, []any{}, byName["Shave"]["appointmentIds"])
	assert.Equal(t, float64(30), byName["Fade"]["price"])
}

func TestServiceMutationsRequireAdmin(t *testing.T) {
	env := setupRouter(t)
	shop := seedShop(t, env.db, "Chop Clock", svc("Fade", "30", 30))
	_, token := env.userToken(t)
	path := "/api/services/" + shop.Services[0].ID.String()

	body := map[string]any{"name": "Buzz", "price": 10, "duration": 10}
	assert.Equal(t, http.StatusUnauthorized, env.do(jsonRequest(http.MethodPost, "/api/services", body)).Code)
	assert.Equal(t, http.StatusForbidden, env.do(authRequest(http.MethodPost, "/api/services", body, token)).Code)
	assert.Equal(t, http.StatusForbidden, env.do(authRequest(http.MethodPut, path, body, token)).Code)
	assert.Equal(t, http.StatusForbidden, env.do(authRequest(http.MethodDelete, path, nil, token)).Code)

	assert.Equal(t, int64(1), countRows(t, env.db, &models.Service{}))
}

func TestCreateService(t *testing.T) {
	env := setupRouter(t)
	admin := env.adminToken(t)

	t.Run("needs a shop", func(t *testing.T) {
		w := env.do(authRequest(http.MethodPost, "/api/services",
			map[string]any{"name": "Buzz", "price": 10, "duration": 10}, admin))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "shop_not_found", parseResponse(t, w)["error_code"])
	})

	shop := seedShop(t, env.db, "Chop Clock")

	t.Run("created", func(t *testing.T) {
		w := env.do(authRequest(http.MethodPost, "/api/services",
			map[string]any{"name": " Buzz ", "price": "12.50", "duration": "25"}, admin))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, "Buzz", resp["name"])
		assert.Equal(t, 12.5, resp["price"])
		assert.Equal(t, float64(25), resp["duration"])
		assert.Equal(t, shop.ID.String(), resp["shopId"])
		assert.Equal(t, []any{}, resp["appointmentIds"])
	})

	t.Run("invalid", func(t *testing.T) {
		for _, body := range []map[string]any{
			{"price": 10, "duration": 10},
			{"name": "x", "duration": 10},
			{"name": "x", "price": -1, "duration": 10},
			{"name": "x", "price": 10, "duration": 0},
			{"name": "x", "price": 10, "duration": 1.5},
		} {
			w := env.do(authRequest(http.MethodPost, "/api/services", body, admin))
			assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
		}
	})

	assert.Equal(t, int64(1), countRows(t, env.db, &models.Service{}))
	assert.Contains(t, env.audit.actions(), audit.ActionServiceCreated)
}

func TestUpdateService(t *testing.T) {
	env := setupRouter(t)
	shop := seedShop(t, env.db, "Chop Clock", svc("Fade", "30", 30))
	admin := env.adminToken(t)
	path := "/api/services/" + shop.Services[0].ID.String()

	w := env.do(authRequest(http.MethodPut, path,
		map[string]any{"name": "Skin Fade", "description": "sharp", "price": 35, "duration": 40}, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	assert.Equal(t, "Skin Fade", resp["name"])
	assert.Equal(t, "sharp", resp["description"])
	assert.Equal(t, float64(35), resp["price"])
	assert.Equal(t, float64(40), resp["duration"])

	var stored models.Service
	require.NoError(t, env.db.First(&stored, "id = ?", shop.Services[0].ID).Error)
	assert.Equal(t, "Skin Fade", stored.Name)
	assert.Equal(t, shop.ID, stored.ShopID)

	body := map[string]any{"name": "x", "price": 1, "duration": 1}
	assert.Equal(t, http.StatusNotFound,
		env.do(authRequest(http.MethodPut, "/api/services/3f1c7a52-7a8e-4c1e-9d55-2b1b5c9a0e01", body, admin)).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(authRequest(http.MethodPut, "/api/services/not-a-uuid", body, admin)).Code)
}

func TestDeleteServiceKeepsAppointments(t *testing.T) {
	env := setupRouter(t)
	shop := seedShop(t, env.db, "Chop Clock", svc("Fade", "30", 30), svc("Shave", "20", 15))
	_, token := env.userToken(t)
	admin := env.adminToken(t)
	fade := shop.Services[0].ID.String()

	body := bookingBody(fade, shop.Services[1].ID.String())
	require.Equal(t, http.StatusCreated, env.do(authRequest(http.MethodPost, "/api/appointments", body, token)).Code)

	w := env.do(authRequest(http.MethodDelete, "/api/services/"+fade, nil, admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Service deleted successfully", parseResponse(t, w)["message"])

	assert.Equal(t, int64(1), countRows(t, env.db, &models.Service{}))
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Appointment{}))
	assert.Equal(t, int64(2), countRows(t, env.db, &models.AppointmentService{}))

	w = env.do(authRequest(http.MethodGet, "/api/appointments", nil, admin))
	list := parseList(t, w)
	require.Len(t, list, 1)
	assert.Len(t, list[0]["serviceIds"], 2)

	assert.Equal(t, http.StatusNotFound, env.do(authRequest(http.MethodDelete, "/api/services/"+fade, nil, admin)).Code)
}

func TestServiceMutationInvalidatesShopCache(t *testing.T) {
	env := setupRouter(t)
	shop := seedShop(t, env.db, "Chop Clock", svc("Fade", "30", 30))
	admin := env.adminToken(t)

	require.Equal(t, http.StatusOK, env.do(jsonRequest(http.MethodGet, "/api/shop", nil)).Code)
	_, cached, err := env.cache.Get(t.Context(), cache.KeyShop)
	require.NoError(t, err)
	require.True(t, cached)

	w := env.do(authRequest(http.MethodDelete, "/api/services/"+shop.Services[0].ID.String(), nil, admin))
	require.Equal(t, http.StatusOK, w.Code)

	_, cached, err = env.cache.Get(t.Context(), cache.KeyShop)
	require.NoError(t, err)
	assert.False(t, cached)

	w = env.do(jsonRequest(http.MethodGet, "/api/shop", nil))
	assert.Empty(t, parseResponse(t, w)["services"])
}
