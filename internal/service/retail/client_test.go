package retail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailgenie/gateway/internal/model"
)

func newTestClient(t *testing.T, r http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return NewClient(Config{APIURL: ts.URL})
}

func writeJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, "http://localhost:5000", client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.client.Timeout)

	client = NewClient(Config{APIURL: "http://api.internal:8000/"})
	assert.Equal(t, "http://api.internal:8000", client.BaseURL())
}

func TestGetProducts_WrappedList(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", writeJSON(`{"products":[{"name":"Mug","price":9.99}]}`))
	client := newTestClient(t, r)

	products, err := client.GetProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Product{{Name: "Mug", Price: 9.99}}, products)
}

func TestGetProducts_BareArray(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", writeJSON(`[{"id":"p1","name":"Mug","price":9.99,"in_stock":true},{"id":"p2","name":"Tea","price":4}]`))
	client := newTestClient(t, r)

	products, err := client.GetProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.True(t, products[0].Available())
	assert.False(t, products[1].Available())
}

func TestGetOrders_BothShapes(t *testing.T) {
	order := `{"id":"o1","customer_name":"Ann","total_amount":12.5,"status":"Shipped","items":[{"product_id":"p1","product_name":"Mug","quantity":2,"price":6.25}]}`
	for name, body := range map[string]string{
		"wrapped": `{"orders":[` + order + `]}`,
		"bare":    `[` + order + `]`,
	} {
		t.Run(name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/orders", writeJSON(body))
			client := newTestClient(t, r)

			orders, err := client.GetOrders(context.Background())

			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, model.OrderShipped, orders[0].Status)
			assert.Equal(t, []model.OrderItem{{ProductID: "p1", ProductName: "Mug", Quantity: 2, Price: 6.25}}, orders[0].Items)
		})
	}
}

func TestListEndpoints_UnexpectedShape(t *testing.T) {
	bodies := map[string]string{
		"null":          `null`,
		"empty":         ``,
		"unrelated":     `{"data":[{"name":"Mug"}]}`,
		"wrapped null":  `{"products":null,"orders":null}`,
		"wrapped value": `{"products":"none","orders":3}`,
		"invalid json":  `invalid-json`,
		"wrong element": `[1,2,3]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/products", writeJSON(body))
			r.Get("/api/orders", writeJSON(body))
			r.Get("/api/safety/cold-chain", writeJSON(body))
			r.Get("/api/safety/waste", writeJSON(body))
			client := newTestClient(t, r)
			ctx := context.Background()

			products, err := client.GetProducts(ctx)
			require.NoError(t, err)
			assert.NotNil(t, products)
			assert.Empty(t, products)

			orders, err := client.GetOrders(ctx)
			require.NoError(t, err)
			assert.NotNil(t, orders)
			assert.Empty(t, orders)

			metrics, err := client.GetColdChainMetrics(ctx)
			require.NoError(t, err)
			assert.NotNil(t, metrics)
			assert.Empty(t, metrics)

			waste, err := client.GetWasteMetrics(ctx)
			require.NoError(t, err)
			assert.NotNil(t, waste)
			assert.Empty(t, waste)
		})
	}
}

func TestGetProducts_SkipsMistypedElements(t *testing.T) {
	for name, body := range map[string]string{
		"wrapped": `{"products":[{"id":"p1","name":"Mug","price":9.99},{"id":"p2","name":"Tea","price":"4.50"},{"id":"p3","name":"Jam","price":3}]}`,
		"bare":    `[{"id":"p1","name":"Mug","price":9.99},{"id":"p2","name":"Tea","price":"4.50"},{"id":"p3","name":"Jam","price":3}]`,
	} {
		t.Run(name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/products", writeJSON(body))
			client := newTestClient(t, r)

			products, err := client.GetProducts(context.Background())

			require.NoError(t, err)
			assert.Equal(t, []model.Product{
				{ID: "p1", Name: "Mug", Price: 9.99},
				{ID: "p3", Name: "Jam", Price: 3},
			}, products)
		})
	}
}

func TestSafetyLists_OnlyAcceptBareArrays(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/safety/cold-chain", writeJSON(`[{"id":"z1","zone":"Dairy","temperature":3.5,"humidity":40,"status":"Normal","last_updated":"2024-01-01T00:00:00Z"}]`))
	r.Get("/api/safety/waste", writeJSON(`{"waste":[{"id":"w1","category":"Compost","weight_kg":12,"fill_level":80,"location":"Dock"}]}`))
	client := newTestClient(t, r)

	metrics, err := client.GetColdChainMetrics(context.Background())
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Dairy", metrics[0].Zone)
	assert.Equal(t, 3.5, metrics[0].Temperature)

	waste, err := client.GetWasteMetrics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, waste)
}

func TestDeleteProduct_EmptyResponse(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusOK} {
		var calls atomic.Int32
		r := chi.NewRouter()
		r.Delete("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.Equal(t, "abc123", chi.URLParam(r, "id"))
			w.WriteHeader(status)
		})
		client := newTestClient(t, r)

		err := client.DeleteProduct(context.Background(), "abc123")

		assert.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	}
}

func TestMutations_MethodAndPath(t *testing.T) {
	type seen struct {
		method string
		path   string
		body   string
	}
	var (
		mu       sync.Mutex
		requests []seen
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, seen{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})
	ctx := context.Background()
	name := "Big Mug"
	status := model.OrderDelivered

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"create product", func() error { _, err := client.CreateProduct(ctx, model.Product{Name: "Mug", Price: 1}); return err }, http.MethodPost, "/api/products"},
		{"update product", func() error {
			_, err := client.UpdateProduct(ctx, "p-42", model.ProductPatch{Name: &name})
			return err
		}, http.MethodPut, "/api/products/p-42"},
		{"delete product", func() error { return client.DeleteProduct(ctx, "p-42") }, http.MethodDelete, "/api/products/p-42"},
		{"create order", func() error { _, err := client.CreateOrder(ctx, model.Order{CustomerName: "Ann"}); return err }, http.MethodPost, "/api/orders"},
		{"update order", func() error {
			_, err := client.UpdateOrder(ctx, "o-7", model.OrderPatch{Status: &status})
			return err
		}, http.MethodPut, "/api/orders/o-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mu.Lock()
			requests = nil
			mu.Unlock()

			require.NoError(t, tt.call())

			mu.Lock()
			defer mu.Unlock()
			require.Len(t, requests, 1)
			assert.Equal(t, tt.method, requests[0].method)
			assert.Equal(t, tt.path, requests[0].path)
		})
	}
}

func TestUpdateProduct_SendsOnlySetFields(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"price":12.5}`, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":"p1","name":"Mug","price":12.5}`))
	})
	client := newTestClient(t, r)
	price := 12.5

	product, err := client.UpdateProduct(context.Background(), "p1", model.ProductPatch{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, model.Product{ID: "p1", Name: "Mug", Price: 12.5}, product)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@b.com","password":"bad"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})
	client := newTestClient(t, r)

	_, err := client.Login(context.Background(), "a@b.com", "bad")

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestRegister_Success(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@b.com","password":"pw","name":"Ann"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"User registered","token":"t0k","user":{"id":"u1","email":"a@b.com","name":"Ann","role":"staff","created_at":"2024-01-01"}}`))
	})
	client := newTestClient(t, r)

	resp, err := client.Register(context.Background(), "a@b.com", "pw", "Ann")

	require.NoError(t, err)
	assert.Equal(t, "t0k", resp.Token)
	assert.Equal(t, "staff", resp.User.Role)
}

func TestErrors_StatusWithoutMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})
	client := newTestClient(t, r)

	_, err := client.GetProducts(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Request failed with status code 500", err.Error())
}

func TestErrors_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := NewClient(Config{APIURL: url})
	_, err := client.GetOrders(context.Background())

	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "connection refused")
}

func TestErrors_InvalidObjectBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/safety/sentiment", writeJSON(`invalid-json`))
	client := newTestClient(t, r)

	_, err := client.GetStoreSentiment(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestNewError_Priority(t *testing.T) {
	cause := errors.New("dial tcp: timeout")

	assert.Equal(t, "Out of stock", newError([]byte(`{"message":"Out of stock"}`), cause).Message)
	assert.Equal(t, "dial tcp: timeout", newError([]byte(`{"message":""}`), cause).Message)
	assert.Equal(t, "dial tcp: timeout", newError([]byte(`<html>`), cause).Message)
	assert.Equal(t, "dial tcp: timeout", newError(nil, cause).Message)
	assert.Equal(t, "Request failed", newError(nil, errors.New("")).Message)
	assert.Equal(t, "Request failed", newError(nil, nil).Message)
}

func TestTransport_Headers(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/safety/sentiment", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "br", r.Header.Get("Accept-Encoding"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"overall_score":0.4,"mood":"Happy","active_shoppers":17,"timestamp":"now"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL, Token: "secret"})
	sentiment, err := client.GetStoreSentiment(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SentimentData{OverallScore: 0.4, Mood: "Happy", ActiveShoppers: 17, Timestamp: "now"}, sentiment)
}

func TestTransport_BrotliBody(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	bw.Write([]byte(`{"products":[{"name":"Mug","price":9.99}]}`))
	require.NoError(t, bw.Close())

	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	})
	client := newTestClient(t, r)

	products, err := client.GetProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Product{{Name: "Mug", Price: 9.99}}, products)
}
