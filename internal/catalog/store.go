// Package catalog holds the in-memory product collection mirrored from the
// remote gateway and the pure filter used to derive display lists from it.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

const table = "products"

// Store is the authoritative in-memory copy of all products for the process
// lifetime. Mutations apply locally only after the gateway confirms them, so
// a failed write never leaves the mirror ahead of the backend. Handlers are
// the only writers; views read copied snapshots.
type Store struct {
	gw *gateway.Client

	mu       sync.RWMutex
	products []models.Product
}

func NewStore(gw *gateway.Client) *Store {
	return &Store{gw: gw}
}

// Load fetches the full product set, manually ranked items first, unranked
// items newest first. On error the store keeps its previous contents.
func (s *Store) Load(ctx context.Context) error {
	query := url.Values{"order": []string{"sort_order.asc.nullslast,created_at.desc"}}
	var rows []productRow
	if err := s.gw.Select(ctx, table, query, &rows); err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.resolve())
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	slog.Debug("Catalog loaded", "count", len(products))
	return nil
}

// Products returns a copy of the collection in its current order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get returns the product with the given id, if present.
func (s *Store) Get(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// FreshCount reports how many products carry the fresh-today flag.
func (s *Store) FreshCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.products {
		if p.IsFresh {
			n++
		}
	}
	return n
}

// Add inserts a new product and prepends the canonical record the gateway
// returns. The draft must carry an already-uploaded image URL.
func (s *Store) Add(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	var row productRow
	if err := s.gw.Insert(ctx, table, rowFromDraft(draft), &row); err != nil {
		return models.Product{}, fmt.Errorf("add product: %w", err)
	}
	p := row.resolve()
	s.mu.Lock()
	s.products = append([]models.Product{p}, s.products...)
	s.mu.Unlock()
	return p, nil
}

// Update replaces all editable fields of the product with the given id and
// adopts the gateway's canonical copy.
func (s *Store) Update(ctx context.Context, id int, draft models.ProductDraft) (models.Product, error) {
	var row productRow
	if err := s.gw.Update(ctx, table, id, rowFromDraft(draft), &row); err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	p := row.resolve()
	s.replace(id, p)
	return p, nil
}

// Delete removes the product from the gateway, then from memory. There is
// no optimistic removal: a failed delete leaves the collection unchanged.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.gw.Delete(ctx, table, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleVisibility flips the public-display flag of the product with the
// given id. Calling it twice restores the original value.
func (s *Store) ToggleVisibility(ctx context.Context, id int) (models.Product, error) {
	current, ok := s.Get(id)
	if !ok {
		return models.Product{}, fmt.Errorf("toggle visibility: no product with id %d", id)
	}
	next := !current.IsVisible
	var row productRow
	patch := map[string]bool{"is_visible": next}
	if err := s.gw.Update(ctx, table, id, patch, &row); err != nil {
		return models.Product{}, fmt.Errorf("toggle visibility %d: %w", id, err)
	}
	p := row.resolve()
	s.replace(id, p)
	return p, nil
}

// Reorder persists a full manual reordering. The ids must be a permutation
// of the current identifiers; ranks are renormalized to 1..n in the given
// sequence and the in-memory order follows once every rank is confirmed.
func (s *Store) Reorder(ctx context.Context, ids []int) error {
	s.mu.RLock()
	byID := make(map[int]models.Product, len(s.products))
	for _, p := range s.products {
		byID[p.ID] = p
	}
	s.mu.RUnlock()

	if len(ids) != len(byID) {
		return fmt.Errorf("reorder: got %d ids, have %d products", len(ids), len(byID))
	}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return fmt.Errorf("reorder: unknown product id %d", id)
		}
		if seen[id] {
			return fmt.Errorf("reorder: duplicate product id %d", id)
		}
		seen[id] = true
	}

	reordered := make([]models.Product, 0, len(ids))
	for i, id := range ids {
		rank := i + 1
		var row productRow
		patch := map[string]int{"sort_order": rank}
		if err := s.gw.Update(ctx, table, id, patch, &row); err != nil {
			return fmt.Errorf("reorder: rank %d for product %d: %w", rank, id, err)
		}
		reordered = append(reordered, row.resolve())
	}

	s.mu.Lock()
	s.products = reordered
	s.mu.Unlock()
	return nil
}

func (s *Store) replace(id int, p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = p
			return
		}
	}
}
