package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/session"
	"storefront/internal/user"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in product.ProductInput) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Replace(ctx context.Context, id int64, in product.ProductInput) (*product.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Patch(ctx context.Context, id int64, p product.ProductPatch) (*product.Product, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) CreateOrder(ctx context.Context, in order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListUserOrders(ctx context.Context, userID int64) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*user.SessionUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.SessionUser), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) IssueToken(u *user.SessionUser) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) ParseToken(token string) (*user.SessionUser, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.SessionUser), args.Error(1)
}

// --- Harness ---

type harness struct {
	products *MockProductService
	orders   *MockOrderService
	users    *MockUserService
	router   chi.Router
	cookies  []*http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		products: new(MockProductService),
		orders:   new(MockOrderService),
		users:    new(MockUserService),
	}
	handler, err := NewHandler(h.products, h.orders, h.users, session.NewManager("test-secret", false))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Group(handler.Routes)
	h.router = r
	return h
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	return h.send(httptest.NewRequest(http.MethodGet, path, nil))
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.send(req)
}

func (h *harness) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		h.cookies = cookies
	}
	return w
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	h.users.On("Authenticate", mock.Anything, "alice", "secret").
		Return(&user.SessionUser{ID: 5, Username: "alice", Role: user.RoleUser}, nil).Once()
	w := h.post("/login", url.Values{"username": {"alice"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, to string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, to, w.Header().Get("Location"))
}

func mouse() *product.Product {
	return &product.Product{ID: 1, Name: "Mouse", Category: "Peripherals", Price: decimal.RequireFromString("19.99")}
}

func checkoutValues() url.Values {
	return url.Values{
		"fullName":       {"Jane Doe"},
		"email":          {"jane@example.com"},
		"phone":          {"+380 50 123 4567"},
		"address":        {"1 Main St"},
		"city":           {"Kyiv"},
		"postalCode":     {"01001"},
		"deliveryMethod": {order.DeliveryCourier},
		"paymentMethod":  {order.PaymentCreditCard},
		"cardNumber":     {"4111 1111 1111 1111"},
	}
}

// --- Pages ---

func TestHome(t *testing.T) {
	h := newHarness(t)
	var list []*product.Product
	for i, name := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		list = append(list, &product.Product{ID: int64(i + 1), Name: name, Price: decimal.NewFromInt(10)})
	}
	h.products.On("List", mock.Anything, product.ListOptions{SortField: product.SortByID, SortDirection: product.SortAsc}).Return(list, nil)

	w := h.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delta")
	assert.NotContains(t, w.Body.String(), "Echo")
	assert.Contains(t, w.Body.String(), "Cart (0)")
}

func TestProductList(t *testing.T) {
	t.Run("Sort by price", func(t *testing.T) {
		h := newHarness(t)
		h.products.On("List", mock.Anything, mock.MatchedBy(func(o product.ListOptions) bool {
			return o.SortField == product.SortByPrice && o.SortDirection == product.SortDesc && o.Search == "mouse"
		})).Return([]*product.Product{mouse()}, nil)

		w := h.get("/products?sort=desc&search=mouse")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Mouse")
		assert.Contains(t, w.Body.String(), "19.99")
	})

	t.Run("Unknown sort falls back to default order", func(t *testing.T) {
		h := newHarness(t)
		h.products.On("List", mock.Anything, product.ListOptions{}).Return([]*product.Product{}, nil)

		w := h.get("/products?sort=sideways")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No products match your filters.")
	})

	t.Run("Bad price shows a filter error", func(t *testing.T) {
		h := newHarness(t)
		h.products.On("List", mock.Anything, mock.MatchedBy(func(o product.ListOptions) bool {
			return o.MinPrice == nil && o.MaxPrice != nil
		})).Return([]*product.Product{mouse()}, nil)

		w := h.get("/products?minPrice=cheap&maxPrice=50")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Price filters must be numbers.")
		assert.Contains(t, w.Body.String(), "Mouse")
	})

	t.Run("Negative price", func(t *testing.T) {
		h := newHarness(t)
		h.products.On("List", mock.Anything, mock.Anything).
			Return(nil, validation.Wrap(product.ErrInvalidPrice, "minPrice", product.ErrInvalidPrice.Error()))

		w := h.get("/products?minPrice=-5")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Price filters cannot be negative.")
	})
}

// --- Cart ---

func TestCartPages(t *testing.T) {
	h := newHarness(t)
	h.products.On("GetByID", mock.Anything, int64(1)).Return(mouse(), nil)
	h.products.On("GetByID", mock.Anything, int64(99)).Return(nil, product.ErrProductNotFound)

	w := h.post("/cart/add", url.Values{"productId": {"1"}})
	assertRedirect(t, w, "/products")
	w = h.post("/cart/add", url.Values{"productId": {"1"}, "redirect": {"/"}})
	assertRedirect(t, w, "/")

	w = h.get("/cart")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Mouse added to cart.")
	assert.Contains(t, body, "Cart (2)")
	assert.Contains(t, body, "Total: 39.98")

	t.Run("Flashes are shown once", func(t *testing.T) {
		assert.NotContains(t, h.get("/cart").Body.String(), "added to cart")
	})

	t.Run("Unknown product", func(t *testing.T) {
		w := h.post("/cart/add", url.Values{"productId": {"99"}})
		assertRedirect(t, w, "/products")
		assert.Contains(t, h.get("/cart").Body.String(), "Unknown product.")
	})

	t.Run("Offsite redirect is ignored", func(t *testing.T) {
		w := h.post("/cart/add", url.Values{"productId": {"1"}, "redirect": {"//evil.example"}})
		assertRedirect(t, w, "/products")
		h.post("/cart/update", url.Values{"productId": {"1"}, "quantity": {"2"}})
	})

	t.Run("Update quantity", func(t *testing.T) {
		w := h.post("/cart/update", url.Values{"productId": {"1"}, "quantity": {"5"}})
		assertRedirect(t, w, "/cart")
		body := h.get("/cart").Body.String()
		assert.Contains(t, body, "Quantity updated.")
		assert.Contains(t, body, "Total: 99.95")
	})

	t.Run("Bad quantity", func(t *testing.T) {
		w := h.post("/cart/update", url.Values{"productId": {"1"}, "quantity": {"lots"}})
		assertRedirect(t, w, "/cart")
		assert.Contains(t, h.get("/cart").Body.String(), "Quantity must be a whole number.")
	})

	t.Run("Quantity above limit", func(t *testing.T) {
		w := h.post("/cart/update", url.Values{"productId": {"1"}, "quantity": {"10001"}})
		assertRedirect(t, w, "/cart")
		body := h.get("/cart").Body.String()
		assert.Contains(t, body, "Quantity must be at most 10000.")
		assert.Contains(t, body, "Total: 99.95")
	})

	t.Run("Quantity zero removes", func(t *testing.T) {
		w := h.post("/cart/update", url.Values{"productId": {"1"}, "quantity": {"0"}})
		assertRedirect(t, w, "/cart")
		body := h.get("/cart").Body.String()
		assert.Contains(t, body, "Product removed from cart.")
		assert.Contains(t, body, "Your cart is empty.")
	})

	t.Run("Remove missing item", func(t *testing.T) {
		w := h.post("/cart/remove", url.Values{"productId": {"1"}})
		assertRedirect(t, w, "/cart")
		assert.Contains(t, h.get("/cart").Body.String(), "Product not found in cart.")
	})
}

func TestCartPages_Remove(t *testing.T) {
	h := newHarness(t)
	h.products.On("GetByID", mock.Anything, int64(1)).Return(mouse(), nil)
	h.post("/cart/add", url.Values{"productId": {"1"}})

	w := h.post("/cart/remove", url.Values{"productId": {"1"}})

	assertRedirect(t, w, "/cart")
	assert.Contains(t, h.get("/cart").Body.String(), "Cart (0)")
}

func TestCorruptCartCookieStartsEmpty(t *testing.T) {
	h := newHarness(t)
	h.cookies = []*http.Cookie{{Name: session.CookieName, Value: "garbage"}}

	w := h.get("/cart")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty.")
}

// --- Checkout ---

func TestCheckout_EmptyCartRedirects(t *testing.T) {
	h := newHarness(t)

	assertRedirect(t, h.get("/checkout"), "/cart")
	assertRedirect(t, h.post("/checkout", checkoutValues()), "/cart")
	assertRedirect(t, h.get("/checkout/confirm"), "/cart")
	assertRedirect(t, h.post("/checkout/confirm", nil), "/cart")
	assert.Contains(t, h.get("/cart").Body.String(), "Your cart is empty.")
}

func TestCheckout_Flow(t *testing.T) {
	h := newHarness(t)
	h.products.On("GetByID", mock.Anything, int64(1)).Return(mouse(), nil)
	h.post("/cart/add", url.Values{"productId": {"1"}})
	h.post("/cart/add", url.Values{"productId": {"1"}})

	t.Run("Confirm without a form goes back to checkout", func(t *testing.T) {
		assertRedirect(t, h.get("/checkout/confirm"), "/checkout")
	})

	t.Run("Form page", func(t *testing.T) {
		w := h.get("/checkout")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Nova Poshta")
		assert.Contains(t, body, "Cash on Delivery")
		assert.Contains(t, body, "Total: 39.98")
	})

	t.Run("Missing fields re-render with messages", func(t *testing.T) {
		form := checkoutValues()
		form.Del("email")
		form.Set("cardNumber", "12")

		w := h.post("/checkout", form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "is required")
		assert.Contains(t, body, "Jane Doe")
		assertRedirect(t, h.get("/checkout/confirm"), "/checkout")
	})

	t.Run("Valid form moves to confirm", func(t *testing.T) {
		w := h.post("/checkout", checkoutValues())
		assertRedirect(t, w, "/checkout/confirm")

		w = h.get("/checkout/confirm")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "**** **** **** 1111")
		assert.NotContains(t, body, "4111111111111111")
		assert.NotContains(t, body, "4111 1111")
	})

	t.Run("Checkout page never echoes the card", func(t *testing.T) {
		body := h.get("/checkout").Body.String()
		assert.Contains(t, body, "jane@example.com")
		assert.NotContains(t, body, "4111")
	})

	t.Run("Confirm places the order", func(t *testing.T) {
		h.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.CardNumber == "4111111111111111" &&
				in.UserID == nil &&
				len(in.Items) == 1 &&
				*in.Items[0].ProductID == 1 &&
				in.Items[0].Quantity == 2 &&
				in.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99"))
		})).Return(&order.Order{ID: "ord-1"}, nil).Once()

		w := h.post("/checkout/confirm", nil)

		assertRedirect(t, w, "/order/ord-1")
		h.orders.AssertExpectations(t)
	})

	t.Run("Cart and form are cleared", func(t *testing.T) {
		body := h.get("/cart").Body.String()
		assert.Contains(t, body, "Thank you! Your order has been placed.")
		assert.Contains(t, body, "Your cart is empty.")
		assertRedirect(t, h.get("/checkout/confirm"), "/cart")
	})
}

func TestCheckout_ConfirmFailures(t *testing.T) {
	setup := func(t *testing.T) *harness {
		h := newHarness(t)
		h.products.On("GetByID", mock.Anything, int64(1)).Return(mouse(), nil)
		h.post("/cart/add", url.Values{"productId": {"1"}})
		require.Equal(t, http.StatusSeeOther, h.post("/checkout", checkoutValues()).Code)
		return h
	}

	t.Run("Validation sends the user back", func(t *testing.T) {
		h := setup(t)
		h.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, validation.New("email", "is required"))

		assertRedirect(t, h.post("/checkout/confirm", nil), "/checkout")
		assert.Contains(t, h.get("/cart").Body.String(), "Cart (1)")
	})

	t.Run("Storage failure", func(t *testing.T) {
		h := setup(t)
		h.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, order.ErrStorage)

		w := h.post("/checkout/confirm", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, h.get("/cart").Body.String(), "Cart (1)")
	})
}

func TestCheckout_PrefillsFromProfile(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.products.On("GetByID", mock.Anything, int64(1)).Return(mouse(), nil)
	h.post("/cart/add", url.Values{"productId": {"1"}})
	city := "Lviv"
	h.users.On("GetByID", mock.Anything, int64(5)).Return(&user.User{ID: 5, Username: "alice", Email: "alice@example.com", City: &city}, nil)

	body := h.get("/checkout").Body.String()

	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "Lviv")
}

// --- Orders ---

func TestOrderDetail(t *testing.T) {
	last := "1234"
	owner := int64(5)
	card := &order.Order{
		ID:            "card-order",
		PaymentMethod: order.PaymentCreditCard,
		CardLastFour:  &last,
		Status:        order.StatusNew,
		TotalQuantity: 2,
		TotalPrice:    decimal.RequireFromString("39.98"),
		CreatedAt:     time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Items: []*order.OrderItem{{
			ProductName: "Mouse",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("19.99"),
			Subtotal:    decimal.RequireFromString("39.98"),
		}},
	}
	cash := &order.Order{ID: "cash-order", PaymentMethod: order.PaymentCashOnDelivery, CardLastFour: &last}
	owned := &order.Order{ID: "owned", UserID: &owner}

	t.Run("Masked card", func(t *testing.T) {
		h := newHarness(t)
		h.orders.On("GetOrder", mock.Anything, "card-order").Return(card, nil)

		w := h.get("/order/card-order")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "**** **** **** 1234")
		assert.Contains(t, body, "2024-05-01 10:30")
		assert.Contains(t, body, "39.98")
	})

	t.Run("Cash hides the card", func(t *testing.T) {
		h := newHarness(t)
		h.orders.On("GetOrder", mock.Anything, "cash-order").Return(cash, nil)

		w := h.get("/order/cash-order")

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "****")
	})

	t.Run("Unknown order", func(t *testing.T) {
		h := newHarness(t)
		h.orders.On("GetOrder", mock.Anything, "nope").Return(nil, order.ErrOrderNotFound)

		assertRedirect(t, h.get("/order/nope"), "/products")
	})

	t.Run("Owned order", func(t *testing.T) {
		h := newHarness(t)
		h.orders.On("GetOrder", mock.Anything, "owned").Return(owned, nil)

		assert.Equal(t, http.StatusForbidden, h.get("/order/owned").Code)
		h.login(t)
		assert.Equal(t, http.StatusOK, h.get("/order/owned").Code)
	})
}

func TestMyOrders(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		h := newHarness(t)
		assertRedirect(t, h.get("/orders/my"), "/login")
	})

	t.Run("Signed in", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)
		h.orders.On("ListUserOrders", mock.Anything, int64(5)).Return([]*order.Order{
			{ID: "o-1", Status: order.StatusNew, TotalQuantity: 3, TotalPrice: decimal.RequireFromString("59.97")},
		}, nil)

		w := h.get("/orders/my")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "/order/o-1")
		assert.Contains(t, body, "59.97")
	})
}

// --- Auth ---

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)

		h.products.On("List", mock.Anything, mock.Anything).Return([]*product.Product{}, nil)
		body := h.get("/").Body.String()
		assert.Contains(t, body, "Welcome back, alice!")
		assert.Contains(t, body, "Sign out")
	})

	t.Run("Wrong password", func(t *testing.T) {
		h := newHarness(t)
		h.users.On("Authenticate", mock.Anything, "alice", "bad").Return(nil, user.ErrInvalidCredentials)

		w := h.post("/login", url.Values{"username": {"alice"}, "password": {"bad"}})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password")
		assertRedirect(t, h.get("/orders/my"), "/login")
	})

	t.Run("Missing fields", func(t *testing.T) {
		h := newHarness(t)

		w := h.post("/login", url.Values{"username": {"alice"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		h.users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegister(t *testing.T) {
	form := url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret1"},
		"age":      {"30"},
	}
	in := user.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1", Age: 30}

	t.Run("Success", func(t *testing.T) {
		h := newHarness(t)
		h.users.On("Register", mock.Anything, in).Return(&user.User{ID: 1, Username: "alice"}, nil)

		assertRedirect(t, h.post("/register", form), "/login")
		assert.Contains(t, h.get("/login").Body.String(), "Registration successful. Please sign in.")
	})

	t.Run("Duplicate username", func(t *testing.T) {
		h := newHarness(t)
		h.users.On("Register", mock.Anything, in).
			Return(nil, validation.Wrap(user.ErrUsernameExists, "username", "User with this username already exists"))

		w := h.post("/register", form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User with this username already exists")
		assert.Contains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("Bad age", func(t *testing.T) {
		h := newHarness(t)
		bad := url.Values{"username": {"alice"}, "age": {"old"}}

		w := h.post("/register", bad)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be a number")
		h.users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.products.On("GetByID", mock.Anything, int64(1)).Return(mouse(), nil)
	h.post("/cart/add", url.Values{"productId": {"1"}})

	assertRedirect(t, h.post("/logout", nil), "/")
	assertRedirect(t, h.get("/orders/my"), "/login")
	assert.Contains(t, h.get("/cart").Body.String(), "Cart (0)")
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "/cart", localPath("/cart", "/"))
	assert.Equal(t, "/", localPath("https://evil.example", "/"))
	assert.Equal(t, "/", localPath("//evil.example", "/"))
	assert.Equal(t, "/", localPath("", "/"))
}
