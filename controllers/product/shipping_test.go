package productControllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/storefront-go/ecommerce-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func TestEncodeRegions(t *testing.T) {
	tests := []struct {
		name    string
		regions []string
		want    string
		wantErr bool
	}{
		{name: "empty list", regions: nil, want: "[]"},
		{name: "two regions", regions: []string{"SP", "RJ"}, want: `["SP","RJ"]`},
		{name: "blank region rejected", regions: []string{"SP", ""}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeRegions(tt.regions)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFreeShippingFor(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		region  string
		want    bool
	}{
		{
			name:    "flag off",
			product: models.Product{IsFreeShipping: false, FreeShippingRegions: `["SP"]`},
			region:  "SP",
			want:    false,
		},
		{
			name:    "empty list means everywhere",
			product: models.Product{IsFreeShipping: true, FreeShippingRegions: `[]`},
			region:  "AM",
			want:    true,
		},
		{
			name:    "listed region",
			product: models.Product{IsFreeShipping: true, FreeShippingRegions: `["SP","RJ"]`},
			region:  "RJ",
			want:    true,
		},
		{
			name:    "case-insensitive match",
			product: models.Product{IsFreeShipping: true, FreeShippingRegions: `["SP"]`},
			region:  "sp",
			want:    true,
		},
		{
			name:    "unlisted region",
			product: models.Product{IsFreeShipping: true, FreeShippingRegions: `["SP"]`},
			region:  "MG",
			want:    false,
		},
		{
			name:    "malformed region data fails closed",
			product: models.Product{IsFreeShipping: true, FreeShippingRegions: `{broken`},
			region:  "SP",
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.FreeShippingFor(tt.region))
		})
	}
}

func TestCheckFreeShippingHandler(t *testing.T) {
	db := openTestDB(t)
	p := models.Product{
		Name:                "Shirt",
		Price:               25,
		Stock:               10,
		IsFreeShipping:      true,
		FreeShippingRegions: `["SP"]`,
	}
	require.NoError(t, db.Create(&p).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/products/:id/free-shipping", CheckFreeShipping(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/products/%d/free-shipping?region=SP", p.ID), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"free_shipping":true`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/products/%d/free-shipping?region=MG", p.ID), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"free_shipping":false`)

	// Region is required
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/products/%d/free-shipping", p.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown product
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/999/free-shipping?region=SP", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
