package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/model"
)

// ListRestaurants handler
// @Summary List restaurants
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Restaurant
// @Router /catalog/restaurants [get]
func (s *RestHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	res, err := s.CatalogApp.ListRestaurants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListMenu handler
// @Summary List a restaurant's menu
// @Description Menu items, optionally filtered by diet, excluded allergens, category and stock
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param diet query string false "vegetarian, vegan, ..."
// @Param exclude query string false "comma separated allergens"
// @Param category query string false "Category"
// @Param in_stock query bool false "Only items in stock"
// @Success 200 {array} model.MenuItem
// @Router /catalog/restaurants/{id}/menu [get]
func (s *RestHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.MenuFilter{
		Diet:        q.Get("diet"),
		Category:    q.Get("category"),
		InStockOnly: q.Get("in_stock") == "true",
	}
	if ex := q.Get("exclude"); ex != "" {
		for _, a := range strings.Split(ex, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.ExcludeAllergens = append(filter.ExcludeAllergens, a)
			}
		}
	}

	res, err := s.CatalogApp.ListMenu(r.Context(), mux.Vars(r)["id"], filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
