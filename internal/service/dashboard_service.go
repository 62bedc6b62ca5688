package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"retailgenie/gateway/internal/model"
	"retailgenie/gateway/internal/service/retail"
)

const (
	DefaultOverviewTTL = 30 * time.Second
	forecastWindow     = 10
	topProductsLimit   = 5
	bulkDeleteLimit    = 8
)

var ErrInvalidForecastInput = errors.New("please enter exactly 10 valid numbers")

// Catalog is the part of the backend the dashboard service works with.
type Catalog interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, input model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetOrders(ctx context.Context) ([]model.Order, error)
	CreateOrder(ctx context.Context, input model.Order) (model.Order, error)
	UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (model.Order, error)
	PredictDemand(ctx context.Context, in retail.DemandForecastInput) (retail.DemandForecastOutput, error)
}

type cachedOverview struct {
	overview Overview
	expiry   time.Time
}

type DashboardService struct {
	catalog Catalog
	ttl     time.Duration
	now     func() time.Time

	rebuilds singleflight.Group

	// generation is bumped by every mutation. A rebuild only publishes its
	// result if no mutation happened while it was fetching.
	cacheMu    sync.RWMutex
	cache      *cachedOverview
	generation uint64
}

func NewDashboardService(catalog Catalog, ttl time.Duration) *DashboardService {
	if ttl <= 0 {
		ttl = DefaultOverviewTTL
	}
	return &DashboardService{
		catalog: catalog,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *DashboardService) Products(ctx context.Context) ([]model.Product, error) {
	return s.catalog.GetProducts(ctx)
}

func (s *DashboardService) Orders(ctx context.Context) ([]model.Order, error) {
	return s.catalog.GetOrders(ctx)
}

func (s *DashboardService) CreateProduct(ctx context.Context, input model.Product) (model.Product, error) {
	defer s.invalidate()
	return s.catalog.CreateProduct(ctx, input)
}

func (s *DashboardService) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error) {
	defer s.invalidate()
	return s.catalog.UpdateProduct(ctx, id, patch)
}

func (s *DashboardService) DeleteProduct(ctx context.Context, id string) error {
	defer s.invalidate()
	return s.catalog.DeleteProduct(ctx, id)
}

func (s *DashboardService) CreateOrder(ctx context.Context, input model.Order) (model.Order, error) {
	defer s.invalidate()
	return s.catalog.CreateOrder(ctx, input)
}

func (s *DashboardService) UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (model.Order, error) {
	defer s.invalidate()
	return s.catalog.UpdateOrder(ctx, id, patch)
}

// BulkDeleteProducts deletes every distinct id concurrently and returns the
// number of ids it attempted. The first failure wins.
func (s *DashboardService) BulkDeleteProducts(ctx context.Context, ids []string) (int, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return 0, nil
	}
	defer s.invalidate()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteLimit)
	for _, id := range unique {
		g.Go(func() error {
			return s.catalog.DeleteProduct(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(unique), nil
}

// Forecast validates the ten-day sales series before asking the backend.
func (s *DashboardService) Forecast(ctx context.Context, values []float64) (retail.DemandForecastOutput, error) {
	if len(values) != forecastWindow {
		return retail.DemandForecastOutput{}, ErrInvalidForecastInput
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return retail.DemandForecastOutput{}, ErrInvalidForecastInput
		}
	}
	return s.catalog.PredictDemand(ctx, retail.DemandForecastInput{LastTenDays: values})
}

// Overview returns the cached aggregate or rebuilds it from fresh orders
// and products. Concurrent callers share one rebuild per cache generation,
// and mutations never wait for a rebuild to finish.
func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	s.cacheMu.RLock()
	cached, gen := s.cache, s.generation
	s.cacheMu.RUnlock()
	if cached != nil && s.now().Before(cached.expiry) {
		return cached.overview, nil
	}

	v, err, _ := s.rebuilds.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		return s.rebuild(ctx, gen)
	})
	if err != nil {
		return Overview{}, err
	}
	return v.(Overview), nil
}

func (s *DashboardService) rebuild(ctx context.Context, gen uint64) (Overview, error) {
	s.cacheMu.RLock()
	cached := s.cache
	s.cacheMu.RUnlock()
	if cached != nil && s.now().Before(cached.expiry) {
		return cached.overview, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var (
		orders   []model.Order
		products []model.Product
	)
	g.Go(func() error {
		var err error
		orders, err = s.catalog.GetOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.catalog.GetProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	now := s.now()
	overview := BuildOverview(orders, products)
	overview.GeneratedAt = now.UTC()

	s.cacheMu.Lock()
	if s.generation == gen {
		s.cache = &cachedOverview{
			overview: overview,
			expiry:   now.Add(s.ttl),
		}
	}
	s.cacheMu.Unlock()

	return overview, nil
}

func (s *DashboardService) invalidate() {
	s.cacheMu.Lock()
	s.cache = nil
	s.generation++
	s.cacheMu.Unlock()
}

type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

type ProductSales struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

type DailySales struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type Overview struct {
	TotalRevenue      float64        `json:"total_revenue"`
	TotalOrders       int            `json:"total_orders"`
	AverageOrderValue float64        `json:"average_order_value"`
	ProductCount      int            `json:"product_count"`
	InStockCount      int            `json:"in_stock_count"`
	StatusCounts      []StatusCount  `json:"status_counts"`
	TopProducts       []ProductSales `json:"top_products"`
	SalesByDate       []DailySales   `json:"sales_by_date"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

var statusOrder = map[model.OrderStatus]int{
	model.OrderPending:    0,
	model.OrderProcessing: 1,
	model.OrderShipped:    2,
	model.OrderDelivered:  3,
	model.OrderCancelled:  4,
}

// BuildOverview aggregates orders and products the way the analytics page
// presents them.
func BuildOverview(orders []model.Order, products []model.Product) Overview {
	overview := Overview{
		TotalOrders:  len(orders),
		ProductCount: len(products),
		StatusCounts: []StatusCount{},
		TopProducts:  []ProductSales{},
		SalesByDate:  []DailySales{},
	}

	for _, p := range products {
		if p.Available() {
			overview.InStockCount++
		}
	}

	statusCounts := make(map[model.OrderStatus]int)
	units := make(map[string]int)
	daily := make(map[string]float64)
	for _, o := range orders {
		overview.TotalRevenue += o.TotalAmount
		statusCounts[o.Status]++
		for _, item := range o.Items {
			units[item.ProductName] += item.Quantity
		}
		if day, ok := orderDay(o.CreatedAt); ok {
			daily[day] += o.TotalAmount
		}
	}
	if len(orders) > 0 {
		overview.AverageOrderValue = overview.TotalRevenue / float64(len(orders))
	}

	for status, count := range statusCounts {
		overview.StatusCounts = append(overview.StatusCounts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(overview.StatusCounts, func(i, j int) bool {
		a, b := overview.StatusCounts[i].Status, overview.StatusCounts[j].Status
		ra, aKnown := statusOrder[a]
		rb, bKnown := statusOrder[b]
		switch {
		case aKnown && bKnown:
			return ra < rb
		case aKnown != bKnown:
			return aKnown
		default:
			return a < b
		}
	})

	for name, n := range units {
		overview.TopProducts = append(overview.TopProducts, ProductSales{Name: name, Units: n})
	}
	sort.Slice(overview.TopProducts, func(i, j int) bool {
		if overview.TopProducts[i].Units != overview.TopProducts[j].Units {
			return overview.TopProducts[i].Units > overview.TopProducts[j].Units
		}
		return overview.TopProducts[i].Name < overview.TopProducts[j].Name
	})
	if len(overview.TopProducts) > topProductsLimit {
		overview.TopProducts = overview.TopProducts[:topProductsLimit]
	}

	for day, amount := range daily {
		overview.SalesByDate = append(overview.SalesByDate, DailySales{Date: day, Amount: amount})
	}
	sort.Slice(overview.SalesByDate, func(i, j int) bool {
		return overview.SalesByDate[i].Date < overview.SalesByDate[j].Date
	})

	return overview
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// orderDay returns the UTC calendar day of a created_at value.
func orderDay(createdAt string) (string, bool) {
	if createdAt == "" {
		return "", false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return t.UTC().Format(time.DateOnly), true
		}
	}
	return "", false
}
