package services

import (
	"context"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/notifier"
	"restaurant_pos_backend/internal/repositories"
)

// In-memory repository fakes. They mirror the real repositories' error
// contracts (ErrNotFound, ErrStaleStatus, ErrDuplicateKey) so services can be
// exercised without a database.

type fakeOrderRepo struct {
	orders map[int64]*models.Order
	nextID int64
	err    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*models.Order{}, nextID: 1}
}

func (r *fakeOrderRepo) CreateOrder(order *models.Order) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	cp := *order
	r.orders[order.ID] = &cp
	return order.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(orderID int64) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	o, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) GetOpenOrders() ([]models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Order{}
	for _, o := range r.orders {
		if models.IsTerminalOrderStatus(o.Status) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(orderID int64, newStatus, expectedStatus string, updatedAt time.Time, completedAt *time.Time) error {
	if r.err != nil {
		return r.err
	}
	o, ok := r.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	if o.Status != expectedStatus {
		return repositories.ErrStaleStatus
	}
	o.Status = newStatus
	o.UpdatedAt = updatedAt
	if completedAt != nil {
		o.CompletedAt = completedAt
	}
	return nil
}

func (r *fakeOrderRepo) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return append([]models.OrderItem{}, o.Items...), nil
}

type fakeTableRepo struct {
	tables map[int64]*models.Table
	nextID int64
	err    error
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: map[int64]*models.Table{}, nextID: 1}
}

func (r *fakeTableRepo) addTable(number string, status string) *models.Table {
	t := &models.Table{ID: r.nextID, Number: number, Capacity: 4, Status: status}
	r.tables[t.ID] = t
	r.nextID++
	return t
}

func (r *fakeTableRepo) CreateTable(table *models.Table) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	for _, t := range r.tables {
		if t.Number == table.Number {
			return 0, repositories.ErrDuplicateKey
		}
	}
	table.ID = r.nextID
	r.nextID++
	cp := *table
	r.tables[table.ID] = &cp
	return table.ID, nil
}

func (r *fakeTableRepo) GetTableByID(tableID int64) (*models.Table, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tables[tableID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTableRepo) GetTables() ([]models.Table, error) {
	out := []models.Table{}
	for _, t := range r.tables {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTableRepo) UpdateTable(table *models.Table) error {
	t, ok := r.tables[table.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	*t = *table
	return nil
}

func (r *fakeTableRepo) UpdateTableStatus(tableID int64, status string, updatedAt time.Time) error {
	t, ok := r.tables[tableID]
	if !ok {
		return repositories.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	return nil
}

func (r *fakeTableRepo) SetCurrentOrder(tableID int64, orderID *int64, status string, updatedAt time.Time) error {
	t, ok := r.tables[tableID]
	if !ok {
		return repositories.ErrNotFound
	}
	t.CurrentOrderID = orderID
	t.Status = status
	t.UpdatedAt = updatedAt
	return nil
}

func (r *fakeTableRepo) GetOccupiedTablesWithOrders() ([]models.Table, error) {
	out := []models.Table{}
	for _, t := range r.tables {
		if t.Status == models.TableStatusOccupied && t.CurrentOrderID != nil {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTableRepo) DeleteTable(tableID int64) error {
	if _, ok := r.tables[tableID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tables, tableID)
	return nil
}

type fakeMenuRepo struct {
	items  map[int64]*models.MenuItem
	nextID int64
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: map[int64]*models.MenuItem{}, nextID: 1}
}

func (r *fakeMenuRepo) addItem(name, category string, price float64) *models.MenuItem {
	item := &models.MenuItem{ID: r.nextID, Name: name, Category: category, Price: price, Available: true}
	r.items[item.ID] = item
	r.nextID++
	return item
}

func (r *fakeMenuRepo) CreateMenuItem(item *models.MenuItem) (int64, error) {
	item.ID = r.nextID
	r.nextID++
	cp := *item
	r.items[item.ID] = &cp
	return item.ID, nil
}

func (r *fakeMenuRepo) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeMenuRepo) GetMenuItems(category *string, onlyAvailable bool) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, item := range r.items {
		if category != nil && item.Category != *category {
			continue
		}
		if onlyAvailable && !item.Available {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeMenuRepo) UpdateMenuItem(item *models.MenuItem) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	*stored = *item
	return nil
}

func (r *fakeMenuRepo) DeleteMenuItem(itemID int64) error {
	if _, ok := r.items[itemID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

type fakePaymentRepo struct {
	payments []models.Payment
	nextID   int64
	err      error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1}
}

func (r *fakePaymentRepo) CreatePayment(payment *models.Payment) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	payment.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, *payment)
	return payment.ID, nil
}

func (r *fakePaymentRepo) GetPayments(limit int) ([]models.Payment, error) {
	if limit <= 0 || limit > len(r.payments) {
		limit = len(r.payments)
	}
	return append([]models.Payment{}, r.payments[:limit]...), nil
}

func (r *fakePaymentRepo) GetPaymentsByDateRange(start, end time.Time) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range r.payments {
		if p.CreatedAt.Before(start) || p.CreatedAt.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeActivityRepo struct {
	entries []models.ActivityLog
	nextID  int64
	err     error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{nextID: 1}
}

func (r *fakeActivityRepo) CreateActivity(entry *models.ActivityLog) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	entry.ID = r.nextID
	r.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeActivityRepo) GetActivities(filters models.ActivityFilters) ([]models.ActivityLog, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.ActivityLog{}
	for _, e := range r.entries {
		if filters.Type != nil && e.Type != *filters.Type {
			continue
		}
		if filters.Start != nil && e.CreatedAt.Before(*filters.Start) {
			continue
		}
		if filters.End != nil && e.CreatedAt.After(*filters.End) {
			continue
		}
		out = append(out, e)
	}
	// Mirrors the real repository: a positive Limit truncates, zero reads all.
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (r *fakeActivityRepo) types() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Type)
	}
	return out
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) FindUserByID(userID int64) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	u, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, other := range r.users {
		if other.ID != user.ID && other.Username == user.Username {
			return repositories.ErrDuplicateKey
		}
	}
	*u = *user
	return nil
}

func (r *fakeUserRepo) DeleteUser(userID int64) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

type fakeNotifier struct {
	events []notifier.Event
	err    error
}

func (n *fakeNotifier) Publish(_ context.Context, event notifier.Event) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}
