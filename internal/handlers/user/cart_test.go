package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDrillID = "11111111-1111-1111-1111-111111111111"

func setupCartRouter(t *testing.T, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := map[string]models.Product{}
	drillUUID, err := gocql.ParseUUID(testDrillID)
	require.NoError(t, err)
	catalog[testDrillID] = models.Product{ID: drillUUID, Name: "Drill", Price: 12.50}

	Init(store.New(store.NewMemorySlot()), func(id gocql.UUID) (models.Product, error) {
		p, ok := catalog[id.String()]
		if !ok {
			return models.Product{}, errors.New("produit introuvable")
		}
		return p, nil
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	r.GET("/api/cart", GetCart)
	r.POST("/api/cart/add", AddToCart)
	r.POST("/api/cart/quantity", UpdateQuantity)
	r.DELETE("/api/cart/:productId", RemoveFromCart)
	r.DELETE("/api/cart", ClearCart)
	return r
}

type cartBody struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, cartBody) {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed cartBody
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func TestGetCartEmpty(t *testing.T) {
	r := setupCartRouter(t, "user-1")

	w, body := doJSON(t, r, http.MethodGet, "/api/cart", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Items)
	assert.Zero(t, body.Count)
}

func TestGetCartUnauthenticated(t *testing.T) {
	r := setupCartRouter(t, "")

	w, _ := doJSON(t, r, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartRoundTrip(t *testing.T) {
	r := setupCartRouter(t, "user-1")

	payload := `{"product_id":"` + testDrillID + `"}`
	w, body := doJSON(t, r, http.MethodPost, "/api/cart/add", payload)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.Items[0].Quantity)

	// Deuxième ajout : fusion sur l'ID, pas de doublon
	w, body = doJSON(t, r, http.MethodPost, "/api/cart/add", payload)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.InDelta(t, 25.00, body.Total, 0.001)
}

func TestAddUnknownProduct(t *testing.T) {
	r := setupCartRouter(t, "user-1")

	payload := `{"product_id":"99999999-9999-9999-9999-999999999999"}`
	w, _ := doJSON(t, r, http.MethodPost, "/api/cart/add", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	r := setupCartRouter(t, "user-1")

	payload := `{"product_id":"` + testDrillID + `"}`
	_, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", payload)

	w, body := doJSON(t, r, http.MethodPost, "/api/cart/quantity",
		`{"product_id":"`+testDrillID+`","delta":-1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Items)
}

func TestRemoveFromCart(t *testing.T) {
	r := setupCartRouter(t, "user-1")

	payload := `{"product_id":"` + testDrillID + `"}`
	_, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", payload)

	w, body := doJSON(t, r, http.MethodDelete, "/api/cart/"+testDrillID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Items)
}

func TestClearCart(t *testing.T) {
	r := setupCartRouter(t, "user-1")

	payload := `{"product_id":"` + testDrillID + `"}`
	_, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", payload)

	w, _ := doJSON(t, r, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, body := doJSON(t, r, http.MethodGet, "/api/cart", "")
	assert.Empty(t, body.Items)
}
