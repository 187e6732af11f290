package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/pantry-api/internal/api/middleware"
	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// newContext builds an echo context for a JSON request. A non-zero actor is
// injected as verified claims, the way the Auth middleware would.
func newContext(method, target, body string, actor int64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != 0 {
		c.Set(middleware.ClaimsKey, &domain.Claims{SubjectID: actor, RoleID: 1, TenantID: 1})
	}
	return c, rec
}

func withParams(c echo.Context, kv ...string) echo.Context {
	var names, values []string
	for i := 0; i+1 < len(kv); i += 2 {
		names = append(names, kv[i])
		values = append(values, kv[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*domain.Token, error)
	profileFn func(ctx context.Context, claims domain.Claims) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, claims domain.Claims) (*domain.User, error) {
	return s.profileFn(ctx, claims)
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, id int64) (*domain.User, error)
	listFn     func(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error)
	updateFn   func(ctx context.Context, id int64, in ports.UpdateUserInput, actor int64) (*domain.User, error)
	deleteFn   func(ctx context.Context, id, actor int64) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}
func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}
func (s *stubUserService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	return s.listFn(ctx, opts)
}
func (s *stubUserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput, actor int64) (*domain.User, error) {
	return s.updateFn(ctx, id, in, actor)
}
func (s *stubUserService) Delete(ctx context.Context, id, actor int64) error {
	return s.deleteFn(ctx, id, actor)
}

type stubCommentService struct {
	createFn     func(ctx context.Context, in ports.CreateCommentInput, actor int64) (*domain.Comment, error)
	getFn        func(ctx context.Context, id int64) (*domain.Comment, error)
	listFn       func(ctx context.Context, opts ports.ListOptions) ([]*domain.Comment, error)
	listByUserFn func(ctx context.Context, userID int64, opts ports.ListOptions) ([]*domain.Comment, error)
	updateFn     func(ctx context.Context, id int64, in ports.UpdateCommentInput, actor int64) (*domain.Comment, error)
	deleteFn     func(ctx context.Context, id, actor int64) error
}

func (s *stubCommentService) Create(ctx context.Context, in ports.CreateCommentInput, actor int64) (*domain.Comment, error) {
	return s.createFn(ctx, in, actor)
}
func (s *stubCommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.getFn(ctx, id)
}
func (s *stubCommentService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Comment, error) {
	return s.listFn(ctx, opts)
}
func (s *stubCommentService) ListByUser(ctx context.Context, userID int64, opts ports.ListOptions) ([]*domain.Comment, error) {
	return s.listByUserFn(ctx, userID, opts)
}
func (s *stubCommentService) Update(ctx context.Context, id int64, in ports.UpdateCommentInput, actor int64) (*domain.Comment, error) {
	return s.updateFn(ctx, id, in, actor)
}
func (s *stubCommentService) Delete(ctx context.Context, id, actor int64) error {
	return s.deleteFn(ctx, id, actor)
}

type stubIngredientService struct {
	createFn func(ctx context.Context, in ports.CreateIngredientInput, actor int64) (*domain.Ingredient, error)
	getFn    func(ctx context.Context, id int64) (*domain.Ingredient, error)
	listFn   func(ctx context.Context, opts ports.ListOptions) ([]*domain.Ingredient, error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateIngredientInput, actor int64) (*domain.Ingredient, error)
	deleteFn func(ctx context.Context, id, actor int64) error
}

func (s *stubIngredientService) Create(ctx context.Context, in ports.CreateIngredientInput, actor int64) (*domain.Ingredient, error) {
	return s.createFn(ctx, in, actor)
}
func (s *stubIngredientService) Get(ctx context.Context, id int64) (*domain.Ingredient, error) {
	return s.getFn(ctx, id)
}
func (s *stubIngredientService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Ingredient, error) {
	return s.listFn(ctx, opts)
}
func (s *stubIngredientService) Update(ctx context.Context, id int64, in ports.UpdateIngredientInput, actor int64) (*domain.Ingredient, error) {
	return s.updateFn(ctx, id, in, actor)
}
func (s *stubIngredientService) Delete(ctx context.Context, id, actor int64) error {
	return s.deleteFn(ctx, id, actor)
}

type stubRoleService struct {
	createFn func(ctx context.Context, in ports.CreateRoleInput, actor int64) (*domain.Role, error)
	getFn    func(ctx context.Context, id int64) (*domain.Role, error)
	listFn   func(ctx context.Context, opts ports.ListOptions) ([]*domain.Role, error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateRoleInput, actor int64) (*domain.Role, error)
	deleteFn func(ctx context.Context, id, actor int64) error
}

func (s *stubRoleService) Create(ctx context.Context, in ports.CreateRoleInput, actor int64) (*domain.Role, error) {
	return s.createFn(ctx, in, actor)
}
func (s *stubRoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	return s.getFn(ctx, id)
}
func (s *stubRoleService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Role, error) {
	return s.listFn(ctx, opts)
}
func (s *stubRoleService) Update(ctx context.Context, id int64, in ports.UpdateRoleInput, actor int64) (*domain.Role, error) {
	return s.updateFn(ctx, id, in, actor)
}
func (s *stubRoleService) Delete(ctx context.Context, id, actor int64) error {
	return s.deleteFn(ctx, id, actor)
}
