package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

func TestIngredientHandler_Create(t *testing.T) {
	stub := &stubIngredientService{
		createFn: func(_ context.Context, in ports.CreateIngredientInput, actor int64) (*domain.Ingredient, error) {
			if actor != 3 {
				t.Fatalf("expected actor 3, got %d", actor)
			}
			return &domain.Ingredient{ID: 1, Name: in.Name, ShelfLife: in.ShelfLife, UnitOfMeasurement: in.UnitOfMeasurement}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/ingredients",
		`{"name":"Flour","description":"Wheat","shelf_life":180,"unit_of_measurement":"kg"}`, 3)

	if err := NewIngredientHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got domain.Ingredient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != 1 || got.Name != "Flour" || got.ShelfLife != 180 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestIngredientHandler_Create_Validation(t *testing.T) {
	stub := &stubIngredientService{
		createFn: func(context.Context, ports.CreateIngredientInput, int64) (*domain.Ingredient, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	cases := map[string]string{
		"missing name":   `{"unit_of_measurement":"kg"}`,
		"negative shelf": `{"name":"Flour","shelf_life":-1,"unit_of_measurement":"kg"}`,
		"missing unit":   `{"name":"Flour"}`,
		"name too long":  `{"name":"` + strings.Repeat("a", 101) + `","unit_of_measurement":"kg"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/ingredients", body, 3)
			if err := NewIngredientHandler(stub).Create(c); httpCode(err) != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func TestIngredientHandler_Create_Conflict(t *testing.T) {
	stub := &stubIngredientService{
		createFn: func(context.Context, ports.CreateIngredientInput, int64) (*domain.Ingredient, error) {
			return nil, domain.ErrConflict
		},
	}
	c, _ := newContext(http.MethodPost, "/api/ingredients", `{"name":"Flour","shelf_life":30,"unit_of_measurement":"kg"}`, 3)

	if err := NewIngredientHandler(stub).Create(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestIngredientHandler_Create_RequiresClaims(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/ingredients", `{"name":"Flour","shelf_life":30,"unit_of_measurement":"kg"}`, 0)

	if err := NewIngredientHandler(&stubIngredientService{}).Create(c); httpCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestIngredientHandler_Get_InvalidID(t *testing.T) {
	for _, id := range []string{"0", "-4", "abc"} {
		c, _ := newContext(http.MethodGet, "/api/ingredients/"+id, "", 3)
		withParams(c, "id", id)

		if err := NewIngredientHandler(&stubIngredientService{}).Get(c); httpCode(err) != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %v", id, err)
		}
	}
}

func TestIngredientHandler_Update_PartialBody(t *testing.T) {
	stub := &stubIngredientService{
		updateFn: func(_ context.Context, id int64, in ports.UpdateIngredientInput, actor int64) (*domain.Ingredient, error) {
			if id != 5 || actor != 3 {
				t.Fatalf("unexpected id/actor %d/%d", id, actor)
			}
			if in.Name != nil || in.Description != nil || in.UnitOfMeasurement != nil {
				t.Fatalf("omitted fields must stay nil: %+v", in)
			}
			if in.ShelfLife == nil || *in.ShelfLife != 90 {
				t.Fatalf("expected shelf_life 90, got %v", in.ShelfLife)
			}
			return &domain.Ingredient{ID: id, Name: "Flour", ShelfLife: 90}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/api/ingredients/5", `{"shelf_life":90}`, 3)
	withParams(c, "id", "5")

	if err := NewIngredientHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIngredientHandler_Delete(t *testing.T) {
	var deleted []int64
	stub := &stubIngredientService{
		deleteFn: func(_ context.Context, id, actor int64) error {
			for _, d := range deleted {
				if d == id {
					return domain.ErrNotFound
				}
			}
			deleted = append(deleted, id)
			return nil
		},
	}

	c, rec := newContext(http.MethodDelete, "/api/ingredients/5", "", 3)
	withParams(c, "id", "5")
	if err := NewIngredientHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodDelete, "/api/ingredients/5", "", 3)
	withParams(c, "id", "5")
	if err := NewIngredientHandler(stub).Delete(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestIngredientHandler_List_Pagination(t *testing.T) {
	stub := &stubIngredientService{
		listFn: func(_ context.Context, opts ports.ListOptions) ([]*domain.Ingredient, error) {
			if opts.Offset != 10 || opts.Limit != 5 {
				t.Fatalf("unexpected options %+v", opts)
			}
			return []*domain.Ingredient{{ID: 11, Name: "Salt"}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/ingredients?skip=10&limit=5", "", 3)

	if err := NewIngredientHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got []domain.Ingredient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Salt" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestIngredientHandler_List_BadPagination(t *testing.T) {
	for _, q := range []string{"skip=-1", "limit=-5", "limit=ten"} {
		c, _ := newContext(http.MethodGet, "/api/ingredients?"+q, "", 3)
		if err := NewIngredientHandler(&stubIngredientService{}).List(c); httpCode(err) != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", q, err)
		}
	}
}

