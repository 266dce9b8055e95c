package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
	"github.com/tair/storefront/kafka"
)

type recordingPublisher struct {
	events []kafka.OrderCompletedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCompleted(_ context.Context, event kafka.OrderCompletedEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func setup(t *testing.T) (catalog.ProductRepository, *store.MemoryStore) {
	t.Helper()
	defs, err := seed.Default()
	require.NoError(t, err)
	repo := repository.NewMemoryProductRepository(nil)
	require.NoError(t, repo.Load(defs))
	return repo, store.NewMemoryStore()
}

func TestAddItemHandler(t *testing.T) {
	products, cart := setup(t)
	h := NewAddItemHandler(products, cart)
	ctx := context.Background()

	res, err := h.Handle(ctx, AddItemCommand{ProductID: 7, Size: "L", Color: "Black"})
	require.NoError(t, err)
	assert.Equal(t, "Added Cable-Knit Sweater to cart", res.Notice)
	assert.Equal(t, 1, res.Line.Quantity)

	res, err = h.Handle(ctx, AddItemCommand{ProductID: 7, Size: "L", Color: "Black"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Line.Quantity)

	snap := cart.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, "397.00", snap.Total.StringFixed(2))
}

func TestAddItemHandler_DefaultSelection(t *testing.T) {
	products, cart := setup(t)
	h := NewAddItemHandler(products, cart)

	res, err := h.Handle(context.Background(), AddItemCommand{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSize, res.Line.Size)
	assert.Equal(t, domain.DefaultColor, res.Line.Color)
}

func TestAddItemHandler_Errors(t *testing.T) {
	products, cart := setup(t)
	h := NewAddItemHandler(products, cart)
	ctx := context.Background()

	_, err := h.Handle(ctx, AddItemCommand{ProductID: 99})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = h.Handle(ctx, AddItemCommand{ProductID: 1, Size: "XXXL", Color: "Navy"})
	require.ErrorIs(t, err, domain.ErrInvalidSelection)
	var selErr *domain.InvalidSelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, "size", selErr.Field)

	_, err = h.Handle(ctx, AddItemCommand{ProductID: 1, Size: "M", Color: "Teal"})
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	assert.Zero(t, cart.Snapshot().ItemCount)
}

func TestQuantityHandlers(t *testing.T) {
	products, cart := setup(t)
	ctx := context.Background()
	_, err := NewAddItemHandler(products, cart).Handle(ctx, AddItemCommand{ProductID: 3, Size: "S", Color: "Grey"})
	require.NoError(t, err)

	fp := domain.Fingerprint{ProductID: 3, Size: "S", Color: "Grey"}
	line, err := NewIncreaseQuantityHandler(cart).Handle(ctx, IncreaseQuantityCommand{Fingerprint: fp})
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	dec := NewDecreaseQuantityHandler(cart)
	res, err := dec.Handle(ctx, DecreaseQuantityCommand{Fingerprint: fp})
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, 1, res.Line.Quantity)

	res, err = dec.Handle(ctx, DecreaseQuantityCommand{Fingerprint: fp})
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Empty(t, cart.Snapshot().Lines)

	_, err = dec.Handle(ctx, DecreaseQuantityCommand{Fingerprint: fp})
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
	_, err = NewIncreaseQuantityHandler(cart).Handle(ctx, IncreaseQuantityCommand{Fingerprint: fp})
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestRemoveAndClearHandlers(t *testing.T) {
	products, cart := setup(t)
	ctx := context.Background()
	add := NewAddItemHandler(products, cart)
	_, err := add.Handle(ctx, AddItemCommand{ProductID: 1, Size: "M", Color: "Navy"})
	require.NoError(t, err)
	_, err = add.Handle(ctx, AddItemCommand{ProductID: 2, Size: "L", Color: "White"})
	require.NoError(t, err)

	remove := NewRemoveItemHandler(cart)
	assert.True(t, remove.Handle(ctx, RemoveItemCommand{Fingerprint: domain.Fingerprint{ProductID: 1, Size: "M", Color: "Navy"}}))
	assert.False(t, remove.Handle(ctx, RemoveItemCommand{Fingerprint: domain.Fingerprint{ProductID: 1, Size: "M", Color: "Navy"}}))

	snap := cart.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, uint(2), snap.Lines[0].Product.ID)
	assert.Equal(t, "95.00", snap.Total.StringFixed(2))

	NewClearCartHandler(cart).Handle(ctx, ClearCartCommand{})
	snap = cart.Snapshot()
	assert.Zero(t, snap.ItemCount)
	assert.Equal(t, "0.00", snap.Total.StringFixed(2))
}

func TestCheckoutHandler(t *testing.T) {
	products, cart := setup(t)
	ctx := context.Background()
	add := NewAddItemHandler(products, cart)
	_, err := add.Handle(ctx, AddItemCommand{ProductID: 7, Size: "L", Color: "Black"})
	require.NoError(t, err)
	_, err = add.Handle(ctx, AddItemCommand{ProductID: 1, Size: "M", Color: "Navy"})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	order, err := NewCheckoutHandler(cart, pub).Handle(ctx, CheckoutCommand{})
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-[0-9a-f]{8}$`, order.OrderID)
	assert.Equal(t, CheckoutMessage, order.Message)
	assert.Equal(t, 2, order.ItemCount)
	assert.Equal(t, "288.00", order.Total.StringFixed(2))
	assert.Empty(t, cart.Snapshot().Lines)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, order.OrderID, event.OrderID)
	assert.Equal(t, Currency, event.Currency)
	require.Len(t, event.Lines, 2)
	assert.Equal(t, "Cable-Knit Sweater", event.Lines[0].Name)
	assert.Equal(t, "198.50", event.Lines[0].LineTotal.StringFixed(2))
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	_, cart := setup(t)
	pub := &recordingPublisher{}

	_, err := NewCheckoutHandler(cart, pub).Handle(context.Background(), CheckoutCommand{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, pub.events)
}

func TestCheckoutHandler_PublishFailureStillCompletes(t *testing.T) {
	products, cart := setup(t)
	ctx := context.Background()
	_, err := NewAddItemHandler(products, cart).Handle(ctx, AddItemCommand{ProductID: 10})
	require.NoError(t, err)

	pub := &recordingPublisher{err: errors.New("broker down")}
	order, err := NewCheckoutHandler(cart, pub).Handle(ctx, CheckoutCommand{})
	require.NoError(t, err)
	assert.Equal(t, "495.00", order.Total.StringFixed(2))
	assert.Empty(t, cart.Snapshot().Lines)
}

func TestCheckoutHandler_NoPublisher(t *testing.T) {
	products, cart := setup(t)
	ctx := context.Background()
	_, err := NewAddItemHandler(products, cart).Handle(ctx, AddItemCommand{ProductID: 4})
	require.NoError(t, err)

	order, err := NewCheckoutHandler(cart, nil).Handle(ctx, CheckoutCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, order.ItemCount)
}
