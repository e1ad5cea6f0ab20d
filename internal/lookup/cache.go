// Package lookup keeps the vendor and wallet lists used to resolve names.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/model"
)

// Cache is the in-memory copy of vendors and wallets. It is read by render
// code on the UI goroutine and refreshed from command goroutines.
type Cache struct {
	client *api.Client

	mu      sync.RWMutex
	vendors []model.Vendor
	wallets []model.Wallet
}

// New returns an empty cache backed by client.
func New(client *api.Client) *Cache {
	return &Cache{client: client}
}

// Refresh reloads both lists concurrently. Nothing is replaced unless both
// fetches succeed.
func (c *Cache) Refresh(ctx context.Context) error {
	var (
		vendors []model.Vendor
		wallets []model.Wallet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vendors, err = api.List[model.Vendor](gctx, c.client, api.Vendors)
		if err != nil {
			return fmt.Errorf("load vendors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		wallets, err = api.List[model.Wallet](gctx, c.client, api.Wallets)
		if err != nil {
			return fmt.Errorf("load wallets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	c.Set(vendors, wallets)
	return nil
}

// Set replaces both lists.
func (c *Cache) Set(vendors []model.Vendor, wallets []model.Wallet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vendors = append([]model.Vendor(nil), vendors...)
	c.wallets = append([]model.Wallet(nil), wallets...)
}

// VendorName returns the vendor's name, or the unknown-vendor sentinel when
// the vendor is missing or unnamed.
func (c *Cache) VendorName(id string) string {
	if v, ok := c.Vendor(id); ok {
		return nameOr(v.Name, model.UnknownVendor)
	}
	return model.UnknownVendor
}

// WalletName returns the wallet's name, or the unknown-wallet sentinel when
// the wallet is missing or unnamed.
func (c *Cache) WalletName(id string) string {
	if w, ok := c.Wallet(id); ok {
		return nameOr(w.Name, model.UnknownWallet)
	}
	return model.UnknownWallet
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

func (c *Cache) Vendor(id string) (model.Vendor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.vendors {
		if v.ID == id {
			return v, true
		}
	}
	return model.Vendor{}, false
}

func (c *Cache) Wallet(id string) (model.Wallet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, w := range c.wallets {
		if w.ID == id {
			return w, true
		}
	}
	return model.Wallet{}, false
}

// Vendors returns a copy of the cached vendors in backend order.
func (c *Cache) Vendors() []model.Vendor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Vendor(nil), c.vendors...)
}

// Wallets returns a copy of the cached wallets in backend order.
func (c *Cache) Wallets() []model.Wallet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Wallet(nil), c.wallets...)
}
