// Package storefront implements the per-visitor storefront use cases: cart,
// wishlist, product page selection and the confirmation dialog.
package storefront

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

// Services groups the storefront use cases. They share one per-visitor lock so
// a confirmation that touches the cart never interleaves with a cart edit.
type Services struct {
	Cart         *CartStore
	Wishlist     *WishlistStore
	Page         *PageService
	Confirmation *ConfirmationService
	Header       *HeaderService
}

// Option configures the services
type Option func(*core)

// WithLogger sets the logger used when the request context carries none
func WithLogger(l *zap.Logger) Option {
	return func(c *core) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records mutations and snapshot failures
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *core) { c.metrics = m }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(c *core) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides the confirmation id generator
func WithIDGenerator(newID func() string) Option {
	return func(c *core) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// core is the state every service shares
type core struct {
	snaps   *snapshots
	locks   *visitorLocks
	drawer  *drawerFlags
	catalog catalog.Catalog
	logger  *zap.Logger
	metrics *telemetry.Metrics
	now     func() time.Time
	newID   func() string
}

// NewServices wires the storefront over a snapshot store
func NewServices(store shared.SnapshotStore, cat catalog.Catalog, lookup shipping.AddressLookup, opts ...Option) *Services {
	c := &core{
		locks:   newVisitorLocks(),
		drawer:  newDrawerFlags(),
		catalog: cat,
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snaps = &snapshots{store: store, logger: c.logger, metrics: c.metrics}

	cartStore := &CartStore{core: c}
	wishlistStore := &WishlistStore{core: c, cart: cartStore}
	page := &PageService{core: c, lookup: lookup, wishlist: wishlistStore}
	header := &HeaderService{core: c, cart: cartStore, wishlist: wishlistStore}
	return &Services{
		Cart:         cartStore,
		Wishlist:     wishlistStore,
		Page:         page,
		Confirmation: &ConfirmationService{core: c, cart: cartStore, wishlist: wishlistStore, page: page, header: header},
		Header:       header,
	}
}
