package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"retailgenie/gateway/internal/model"
)

var ErrUnknownCollection = errors.New("unknown collection")

// Source is the backend that backups read from and restores write to.
type Source interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	GetOrders(ctx context.Context) ([]model.Order, error)
	CreateProduct(ctx context.Context, input model.Product) (model.Product, error)
	CreateOrder(ctx context.Context, input model.Order) (model.Order, error)
}

type SnapshotStore interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
	CreateSnapshot(ctx context.Context, snap model.Snapshot) error
	SaveProducts(ctx context.Context, snapshotID uuid.UUID, products []model.Product) error
	SaveOrders(ctx context.Context, snapshotID uuid.UUID, orders []model.Order) error
	GetSnapshot(ctx context.Context, id uuid.UUID) (model.Snapshot, error)
	LoadProducts(ctx context.Context, snapshotID uuid.UUID) ([]model.Product, error)
	LoadOrders(ctx context.Context, snapshotID uuid.UUID) ([]model.Order, error)
}

// CollectionRestore counts the documents of one collection that were
// re-created and the ones the backend rejected.
type CollectionRestore struct {
	Collection string `json:"collection"`
	Restored   int    `json:"restored"`
	Failed     int    `json:"failed"`
}

type RestoreSummary struct {
	SnapshotID  uuid.UUID           `json:"snapshot_id"`
	Collections []CollectionRestore `json:"collections"`
}

type BackupService struct {
	source Source
	store  SnapshotStore
	now    func() time.Time
}

func NewBackupService(source Source, store SnapshotStore) *BackupService {
	return &BackupService{source: source, store: store, now: time.Now}
}

// Run fetches the requested collections and stores them as one snapshot.
// No collections means all of them.
func (s *BackupService) Run(ctx context.Context, collections []string) (model.Snapshot, error) {
	wantProducts, wantOrders, err := parseCollections(collections)
	if err != nil {
		return model.Snapshot{}, err
	}

	var (
		products []model.Product
		orders   []model.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	if wantProducts {
		g.Go(func() error {
			var err error
			products, err = s.source.GetProducts(gctx)
			if err != nil {
				return fmt.Errorf("failed to fetch products: %w", err)
			}
			return nil
		})
	}
	if wantOrders {
		g.Go(func() error {
			var err error
			orders, err = s.source.GetOrders(gctx)
			if err != nil {
				return fmt.Errorf("failed to fetch orders: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Snapshot{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to generate snapshot id: %w", err)
	}
	snap := model.Snapshot{
		ID:           id,
		TakenAt:      s.now().UTC(),
		ProductCount: len(products),
		OrderCount:   len(orders),
	}

	err = s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.store.CreateSnapshot(ctx, snap); err != nil {
			return err
		}
		if wantProducts {
			if err := s.store.SaveProducts(ctx, snap.ID, products); err != nil {
				return err
			}
		}
		if wantOrders {
			if err := s.store.SaveOrders(ctx, snap.ID, orders); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Snapshot{}, err
	}

	log.Ctx(ctx).Info().
		Str("snapshot_id", snap.ID.String()).
		Int("products", snap.ProductCount).
		Int("orders", snap.OrderCount).
		Msg("Backup created")

	return snap, nil
}

// Restore re-creates the documents of a snapshot through the backend. Ids
// are cleared so the backend assigns new ones. A rejected document is
// counted and skipped.
func (s *BackupService) Restore(ctx context.Context, snapshotID uuid.UUID, collections []string) (RestoreSummary, error) {
	wantProducts, wantOrders, err := parseCollections(collections)
	if err != nil {
		return RestoreSummary{}, err
	}
	if _, err := s.store.GetSnapshot(ctx, snapshotID); err != nil {
		return RestoreSummary{}, err
	}

	summary := RestoreSummary{SnapshotID: snapshotID, Collections: []CollectionRestore{}}

	if wantProducts {
		products, err := s.store.LoadProducts(ctx, snapshotID)
		if err != nil {
			return RestoreSummary{}, err
		}
		result, err := restoreAll(ctx, model.CollectionProducts, products, func(ctx context.Context, p model.Product) error {
			p.ID = ""
			_, err := s.source.CreateProduct(ctx, p)
			return err
		})
		summary.Collections = append(summary.Collections, result)
		if err != nil {
			return summary, err
		}
	}

	if wantOrders {
		orders, err := s.store.LoadOrders(ctx, snapshotID)
		if err != nil {
			return RestoreSummary{}, err
		}
		result, err := restoreAll(ctx, model.CollectionOrders, orders, func(ctx context.Context, o model.Order) error {
			o.ID = ""
			_, err := s.source.CreateOrder(ctx, o)
			return err
		})
		summary.Collections = append(summary.Collections, result)
		if err != nil {
			return summary, err
		}
	}

	for _, c := range summary.Collections {
		log.Ctx(ctx).Info().
			Str("snapshot_id", snapshotID.String()).
			Str("collection", c.Collection).
			Int("restored", c.Restored).
			Int("failed", c.Failed).
			Msg("Collection restored")
	}

	return summary, nil
}

// restoreAll creates docs one at a time in snapshot order. It stops early
// only when ctx is done.
func restoreAll[T any](ctx context.Context, collection string, docs []T, create func(context.Context, T) error) (CollectionRestore, error) {
	result := CollectionRestore{Collection: collection}
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := create(ctx, doc); err != nil {
			result.Failed++
			log.Ctx(ctx).Warn().Err(err).
				Str("collection", collection).
				Int("position", i).
				Msg("Failed to restore document")
			continue
		}
		result.Restored++
	}
	return result, nil
}

func parseCollections(collections []string) (products, orders bool, err error) {
	if len(collections) == 0 {
		return true, true, nil
	}
	for _, c := range collections {
		switch c {
		case model.CollectionProducts:
			products = true
		case model.CollectionOrders:
			orders = true
		default:
			return false, false, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
		}
	}
	return products, orders, nil
}
