package listclient

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Controller holds the in-memory mirror of the server's list and applies the
// optimistic-update rules. The items slice is an unordered snapshot; display
// order is computed by SortedItems and the stored order field remains the
// source of truth for persistence.
//
// All mutating operations set the busy flag for their duration and clear the
// last error when they start, so a UI can disable controls while a request is
// in flight and show at most one failure message.
type Controller struct {
	api          *Client
	defaultTitle string

	mu       sync.Mutex
	items    []Item
	title    string
	loading  bool
	mutating bool
	lastErr  string
}

func NewController(api *Client, defaultTitle string) *Controller {
	return &Controller{
		api:          api,
		defaultTitle: defaultTitle,
		title:        defaultTitle,
	}
}

// Items returns a copy of the current snapshot, unordered.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// SortedItems returns the display order: unbought first, then order
// ascending, then createdAt descending. This is a pure view transform.
func (c *Controller) SortedItems() []Item {
	items := c.Items()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Bought != items[j].Bought {
			return !items[i].Bought
		}
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items
}

// Title returns the current list title.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// Loading reports whether a full reload is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Mutating reports whether any mutating operation is in flight.
func (c *Controller) Mutating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mutating
}

// LastError returns the message of the most recent failure, or "" when the
// last operation succeeded.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Load replaces the local snapshot wholesale with the server's state.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	items, err := c.api.Items(ctx)
	if err != nil {
		c.recordErr(err)
		return err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// LoadTitle fetches the list title, falling back to the configured default
// when the request fails.
func (c *Controller) LoadTitle(ctx context.Context) {
	settings, err := c.api.ListSettings(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.title = c.defaultTitle
		return
	}
	c.title = settings.Title
}

// Add is deliberately not optimistic: only the server knows whether the name
// merges into an existing item or creates a new one, so local state changes
// only once the authoritative response arrives. The result is upserted by id,
// replacing an existing row (merge) or prepending a new one.
func (c *Controller) Add(ctx context.Context, name string) error {
	done := c.beginMutation()
	defer done()

	item, err := c.api.AddItem(ctx, name)
	if err != nil {
		c.recordErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = *item
			return nil
		}
	}
	c.items = append([]Item{*item}, c.items...)
	return nil
}

// ToggleBought flips the bought flag. A deletion signal or a not-found
// response means the item is already gone (a concurrent delete won the race);
// it is removed locally instead of surfacing an error.
func (c *Controller) ToggleBought(ctx context.Context, id string, bought bool) error {
	done := c.beginMutation()
	defer done()

	item, err := c.api.UpdateItem(ctx, id, UpdateItemRequest{Bought: &bought})
	if err != nil {
		if IsNotFound(err) {
			c.removeLocal(id)
			return nil
		}
		c.recordErr(err)
		return err
	}
	if item == nil {
		c.removeLocal(id)
		return nil
	}

	c.replaceLocal(*item)
	return nil
}

// ChangeQuantity sets an item's quantity. A target of zero or less deletes
// the item; deletion signals and not-found responses reconcile by local
// removal, same as ToggleBought.
func (c *Controller) ChangeQuantity(ctx context.Context, id string, quantity int) error {
	done := c.beginMutation()
	defer done()

	if quantity <= 0 {
		if err := c.api.DeleteItem(ctx, id); err != nil && !IsNotFound(err) {
			c.recordErr(err)
			return err
		}
		c.removeLocal(id)
		return nil
	}

	item, err := c.api.UpdateItem(ctx, id, UpdateItemRequest{Quantity: &quantity})
	if err != nil {
		if IsNotFound(err) {
			c.removeLocal(id)
			return nil
		}
		c.recordErr(err)
		return err
	}
	if item == nil {
		c.removeLocal(id)
		return nil
	}

	c.replaceLocal(*item)
	return nil
}

// Reorder applies the drag result optimistically: every local item is
// renumbered to its index in orderedIDs before any network call completes.
// The per-item updates then run concurrently; if any of them fails, the whole
// local state is discarded and reloaded from the server instead of attempting
// a partial rollback.
func (c *Controller) Reorder(ctx context.Context, orderedIDs []string) error {
	done := c.beginMutation()
	defer done()

	c.mu.Lock()
	byID := make(map[string]Item, len(c.items))
	for _, item := range c.items {
		byID[item.ID] = item
	}
	next := make([]Item, 0, len(orderedIDs))
	for index, id := range orderedIDs {
		item, ok := byID[id]
		if !ok {
			continue
		}
		item.Order = index
		next = append(next, item)
	}
	c.items = next
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for index, id := range orderedIDs {
		order := index
		itemID := id
		g.Go(func() error {
			_, err := c.api.UpdateItem(gctx, itemID, UpdateItemRequest{Order: &order})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		c.recordErr(err)
		// Results of any still-pending updates are irrelevant: the reload
		// supersedes them.
		if loadErr := c.reload(ctx); loadErr != nil {
			return loadErr
		}
		return err
	}
	return nil
}

// Delete removes an item, locally only after the server confirms. Unlike the
// toggle and quantity paths, a not-found here is a hard error.
func (c *Controller) Delete(ctx context.Context, id string) error {
	done := c.beginMutation()
	defer done()

	if err := c.api.DeleteItem(ctx, id); err != nil {
		c.recordErr(err)
		return err
	}

	c.removeLocal(id)
	return nil
}

// SetTitle saves a new list title; blank drafts fall back to the default.
func (c *Controller) SetTitle(ctx context.Context, title string) error {
	done := c.beginMutation()
	defer done()

	if title == "" {
		title = c.defaultTitle
	}

	settings, err := c.api.SetListTitle(ctx, title)
	if err != nil {
		c.recordErr(err)
		return err
	}

	c.mu.Lock()
	c.title = settings.Title
	c.mu.Unlock()
	return nil
}

// reload performs the corrective full reconciliation after a reorder failure
// without touching the error slot set by the failed operation.
func (c *Controller) reload(ctx context.Context) error {
	items, err := c.api.Items(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *Controller) beginMutation() func() {
	c.mu.Lock()
	c.mutating = true
	c.lastErr = ""
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.mutating = false
		c.mu.Unlock()
	}
}

func (c *Controller) recordErr(err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
}

func (c *Controller) replaceLocal(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
}

func (c *Controller) removeLocal(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
