package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-memory transactor ---

// memTransactor serializes transactions with one mutex, standing in for the
// row locks the real store takes.
type memTransactor struct {
	mu sync.Mutex
}

func newMemTransactor() *memTransactor {
	return &memTransactor{}
}

func (t *memTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: &t.mu}, nil
}

type memTx struct {
	release *sync.Mutex
	done    bool
}

func (t *memTx) finish() {
	if !t.done {
		t.done = true
		t.release.Unlock()
	}
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.finish(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.finish(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *memTx) Conn() *pgx.Conn                                               { return nil }

// --- Wallet repo ---

type memWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]domain.Wallet
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: make(map[uuid.UUID]domain.Wallet)}
}

func (r *memWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.ID] = *w
	return nil
}

func (r *memWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *memWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *memWalletRepo) GetByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallets := []domain.Wallet{}
	for _, w := range r.wallets {
		if w.Owner == owner {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (r *memWalletRepo) List(ctx context.Context) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallets := []domain.Wallet{}
	for _, w := range r.wallets {
		wallets = append(wallets, w)
	}
	return wallets, nil
}

func (r *memWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	r.wallets[walletID] = w
	return nil
}

// --- Transaction repo ---

type memTransactionRepo struct {
	mu      sync.RWMutex
	entries []domain.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{}
}

func (r *memTransactionRepo) Append(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *t)
	return nil
}

func (r *memTransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txns := []domain.Transaction{}
	for _, t := range r.entries {
		if t.WalletID == walletID {
			txns = append(txns, t)
		}
	}
	return txns, nil
}

// --- Account repos ---

type memClientRepo struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]domain.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[uuid.UUID]domain.Client)}
}

func (r *memClientRepo) Create(ctx context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := []domain.Client{}
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	return clients, nil
}

func (r *memClientRepo) Update(ctx context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return fmt.Errorf("client not found: %s", c.ID)
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return fmt.Errorf("client not found: %s", id)
	}
	delete(r.clients, id)
	return nil
}

type memRestaurantRepo struct {
	mu    sync.RWMutex
	rests map[uuid.UUID]domain.Restaurant
}

func newMemRestaurantRepo() *memRestaurantRepo {
	return &memRestaurantRepo{rests: make(map[uuid.UUID]domain.Restaurant)}
}

func (r *memRestaurantRepo) Create(ctx context.Context, rest *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rests[rest.ID] = *rest
	return nil
}

func (r *memRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rest, ok := r.rests[id]
	if !ok {
		return nil, nil
	}
	return &rest, nil
}

func (r *memRestaurantRepo) GetByEmail(ctx context.Context, email string) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rest := range r.rests {
		if rest.Email == email {
			rest := rest
			return &rest, nil
		}
	}
	return nil, nil
}

func (r *memRestaurantRepo) List(ctx context.Context) ([]domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rests := []domain.Restaurant{}
	for _, rest := range r.rests {
		rests = append(rests, rest)
	}
	return rests, nil
}

func (r *memRestaurantRepo) Update(ctx context.Context, rest *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rests[rest.ID]; !ok {
		return fmt.Errorf("restaurant not found: %s", rest.ID)
	}
	r.rests[rest.ID] = *rest
	return nil
}

func (r *memRestaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rests[id]; !ok {
		return fmt.Errorf("restaurant not found: %s", id)
	}
	delete(r.rests, id)
	return nil
}

func (r *memRestaurantRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rest, ok := r.rests[id]
	if !ok {
		return fmt.Errorf("restaurant not found: %s", id)
	}
	rest.Rating = rating
	r.rests[id] = rest
	return nil
}

type memCourierRepo struct {
	mu       sync.RWMutex
	couriers map[uuid.UUID]domain.Courier
}

func newMemCourierRepo() *memCourierRepo {
	return &memCourierRepo{couriers: make(map[uuid.UUID]domain.Courier)}
}

func (r *memCourierRepo) Create(ctx context.Context, c *domain.Courier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.couriers[c.ID] = *c
	return nil
}

func (r *memCourierRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.couriers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCourierRepo) GetByEmail(ctx context.Context, email string) (*domain.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.couriers {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memCourierRepo) List(ctx context.Context) ([]domain.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	couriers := []domain.Courier{}
	for _, c := range r.couriers {
		couriers = append(couriers, c)
	}
	return couriers, nil
}

func (r *memCourierRepo) Update(ctx context.Context, c *domain.Courier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.couriers[c.ID]; !ok {
		return fmt.Errorf("courier not found: %s", c.ID)
	}
	r.couriers[c.ID] = *c
	return nil
}

func (r *memCourierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.couriers[id]; !ok {
		return fmt.Errorf("courier not found: %s", id)
	}
	delete(r.couriers, id)
	return nil
}

func (r *memCourierRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.couriers[id]
	if !ok {
		return fmt.Errorf("courier not found: %s", id)
	}
	c.Rating = rating
	r.couriers[id] = c
	return nil
}

type memAdminRepo struct {
	mu     sync.RWMutex
	admins map[uuid.UUID]domain.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[uuid.UUID]domain.Admin)}
}

func (r *memAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.ID] = *a
	return nil
}

func (r *memAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memAdminRepo) List(ctx context.Context) ([]domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admins := []domain.Admin{}
	for _, a := range r.admins {
		admins = append(admins, a)
	}
	return admins, nil
}

func (r *memAdminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return fmt.Errorf("admin not found: %s", id)
	}
	delete(r.admins, id)
	return nil
}

// --- Catalog repos ---

type memProductRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]domain.Product)}
}

func (r *memProductRepo) Create(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := []domain.Product{}
	for _, p := range r.products {
		products = append(products, p)
	}
	return products, nil
}

func (r *memProductRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := []domain.Product{}
	for _, p := range r.products {
		if p.RestaurantID == restaurantID {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *memProductRepo) Update(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return fmt.Errorf("product not found: %s", p.ID)
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product not found: %s", id)
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product not found: %s", id)
	}
	p.Rating = rating
	r.products[id] = p
	return nil
}

type memComboRepo struct {
	mu     sync.RWMutex
	combos map[uuid.UUID]domain.Combo
}

func newMemComboRepo() *memComboRepo {
	return &memComboRepo{combos: make(map[uuid.UUID]domain.Combo)}
}

func (r *memComboRepo) Create(ctx context.Context, c *domain.Combo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.combos[c.ID] = *c
	return nil
}

func (r *memComboRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Combo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.combos[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memComboRepo) List(ctx context.Context) ([]domain.Combo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	combos := []domain.Combo{}
	for _, c := range r.combos {
		combos = append(combos, c)
	}
	return combos, nil
}

func (r *memComboRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Combo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	combos := []domain.Combo{}
	for _, c := range r.combos {
		if c.RestaurantID == restaurantID {
			combos = append(combos, c)
		}
	}
	return combos, nil
}

func (r *memComboRepo) Update(ctx context.Context, c *domain.Combo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.combos[c.ID]; !ok {
		return fmt.Errorf("combo not found: %s", c.ID)
	}
	r.combos[c.ID] = *c
	return nil
}

func (r *memComboRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.combos[id]; !ok {
		return fmt.Errorf("combo not found: %s", id)
	}
	delete(r.combos, id)
	return nil
}

func (r *memComboRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.combos[id]
	if !ok {
		return fmt.Errorf("combo not found: %s", id)
	}
	c.Rating = rating
	r.combos[id] = c
	return nil
}

type memRatingRepo struct {
	mu     sync.RWMutex
	scores map[string][]int
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{scores: make(map[string][]int)}
}

func ratingKey(entity domain.RatedEntity, id uuid.UUID) string {
	return string(entity) + ":" + id.String()
}

func (r *memRatingRepo) Append(ctx context.Context, tx pgx.Tx, entity domain.RatedEntity, entityID uuid.UUID, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ratingKey(entity, entityID)
	r.scores[key] = append(r.scores[key], score)
	return nil
}

func (r *memRatingRepo) ListScores(ctx context.Context, tx pgx.Tx, entity domain.RatedEntity, entityID uuid.UUID) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int{}, r.scores[ratingKey(entity, entityID)]...), nil
}

// --- Cart repo ---

type memCartRepo struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]domain.Cart // keyed by client ID
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[uuid.UUID]domain.Cart)}
}

func (r *memCartRepo) Create(ctx context.Context, c *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.ClientID] = *c
	return nil
}

func (r *memCartRepo) GetByClient(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[clientID]
	if !ok {
		return nil, nil
	}
	c.Items = append([]domain.CartItem{}, c.Items...)
	return &c, nil
}

func (r *memCartRepo) Update(ctx context.Context, c *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.ClientID]; !ok {
		return fmt.Errorf("cart not found: %s", c.ID)
	}
	r.carts[c.ClientID] = *c
	return nil
}

// --- Order repo ---

type memOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]domain.Order)}
}

func (r *memOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memOrderRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.ClientID == clientID })
}

func (r *memOrderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.RestaurantID == restaurantID })
}

func (r *memOrderRepo) ListByCourier(ctx context.Context, courierID uuid.UUID) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.CourierID != nil && *o.CourierID == courierID })
}

func (r *memOrderRepo) listBy(match func(domain.Order) bool) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := []domain.Order{}
	for _, o := range r.orders {
		if match(o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return fmt.Errorf("order not found: %s", o.ID)
	}
	r.orders[o.ID] = *o
	return nil
}

// --- Price cache ---

type memPriceCache struct {
	mu     sync.RWMutex
	prices map[uuid.UUID]decimal.Decimal
}

func newMemPriceCache() *memPriceCache {
	return &memPriceCache{prices: make(map[uuid.UUID]decimal.Decimal)}
}

func (c *memPriceCache) Get(ctx context.Context, productID uuid.UUID) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[productID]
	if !ok {
		return decimal.Zero, false, nil
	}
	return p, true, nil
}

func (c *memPriceCache) Set(ctx context.Context, productID uuid.UUID, price decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[productID] = price
	return nil
}

func (c *memPriceCache) Invalidate(ctx context.Context, productID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.prices, productID)
	return nil
}
