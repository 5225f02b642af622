package services

import (
	"errors"
	"testing"

	"restaurant_pos_backend/internal/models"
)

func newOrderServiceForTest() (OrderService, *fakeOrderRepo, *fakeTableRepo, *fakeMenuRepo, *fakeActivityRepo, *fakeNotifier) {
	orderRepo := newFakeOrderRepo()
	tableRepo := newFakeTableRepo()
	menuRepo := newFakeMenuRepo()
	activityRepo := newFakeActivityRepo()
	n := &fakeNotifier{}
	svc := NewOrderService(orderRepo, tableRepo, menuRepo, NewActivityService(activityRepo), n)
	return svc, orderRepo, tableRepo, menuRepo, activityRepo, n
}

func waiterActor() models.Actor {
	return models.Actor{UserID: 7, UserName: "Ayşe", Role: models.RoleWaiter}
}

func adminActor() models.Actor {
	return models.Actor{UserID: 1, UserName: "Patron", Role: models.RoleAdmin}
}

func createTestOrder(t *testing.T, svc OrderService, tableRepo *fakeTableRepo, menuRepo *fakeMenuRepo) *models.Order {
	t.Helper()
	table := tableRepo.addTable("5", models.TableStatusAvailable)
	item := menuRepo.addItem("Latte", "ice_latte", 120)
	order, err := svc.CreateOrder(CreateOrderRequest{
		TableID: table.ID,
		Items:   []CreateOrderItemRequest{{MenuItemID: item.ID, Quantity: 2}},
	}, waiterActor())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return order
}

func TestCreateOrder(t *testing.T) {
	svc, _, tableRepo, menuRepo, activityRepo, _ := newOrderServiceForTest()

	order := createTestOrder(t, svc, tableRepo, menuRepo)

	if order.Status != models.OrderStatusPending {
		t.Errorf("new order status = %q, want %q", order.Status, models.OrderStatusPending)
	}
	if order.Total != 240 {
		t.Errorf("order total = %v, want 240", order.Total)
	}
	table, _ := tableRepo.GetTableByID(order.TableID)
	if table.Status != models.TableStatusOccupied {
		t.Errorf("table status = %q, want %q", table.Status, models.TableStatusOccupied)
	}
	if table.CurrentOrderID == nil || *table.CurrentOrderID != order.ID {
		t.Errorf("table current order = %v, want %d", table.CurrentOrderID, order.ID)
	}
	if got := activityRepo.types(); len(got) != 1 || got[0] != models.ActivityOrderCreated {
		t.Errorf("audit entries = %v, want [order_created]", got)
	}
}

func TestCreateOrderSnapshotsMenuPrice(t *testing.T) {
	svc, orderRepo, tableRepo, menuRepo, _, _ := newOrderServiceForTest()

	table := tableRepo.addTable("3", models.TableStatusAvailable)
	item := menuRepo.addItem("Cheesecake", "tatlilar", 90)
	order, err := svc.CreateOrder(CreateOrderRequest{
		TableID: table.ID,
		Items:   []CreateOrderItemRequest{{MenuItemID: item.ID, Quantity: 1}},
	}, waiterActor())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Editing the menu later must not change the stored order.
	item.Price = 150
	stored, _ := orderRepo.GetOrderByID(order.ID)
	items, _ := orderRepo.GetOrderItemsByOrderID(order.ID)
	if items[0].UnitPrice != 90 {
		t.Errorf("unit price = %v, want snapshot 90", items[0].UnitPrice)
	}
	if stored.Total != 90 {
		t.Errorf("total = %v, want 90", stored.Total)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, tableRepo, menuRepo, _, _ := newOrderServiceForTest()
	table := tableRepo.addTable("1", models.TableStatusAvailable)
	item := menuRepo.addItem("Latte", "ice_latte", 100)

	cases := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
	}{
		{"empty items", CreateOrderRequest{TableID: table.ID}, ErrValidation},
		{"zero quantity", CreateOrderRequest{TableID: table.ID, Items: []CreateOrderItemRequest{{MenuItemID: item.ID, Quantity: 0}}}, ErrValidation},
		{"unknown table", CreateOrderRequest{TableID: 999, Items: []CreateOrderItemRequest{{MenuItemID: item.ID, Quantity: 1}}}, ErrTableNotFound},
		{"unknown menu item", CreateOrderRequest{TableID: table.ID, Items: []CreateOrderItemRequest{{MenuItemID: 999, Quantity: 1}}}, ErrMenuItemNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateOrder(tc.req, waiterActor()); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateOrderOnOccupiedTable(t *testing.T) {
	svc, _, tableRepo, menuRepo, _, _ := newOrderServiceForTest()

	order := createTestOrder(t, svc, tableRepo, menuRepo)
	_, err := svc.CreateOrder(CreateOrderRequest{
		TableID: order.TableID,
		Items:   []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 1}},
	}, waiterActor())
	if !errors.Is(err, ErrTableOccupied) {
		t.Errorf("second order on same table: got %v, want ErrTableOccupied", err)
	}
}

func TestTransitionStatusHappyPath(t *testing.T) {
	svc, _, tableRepo, menuRepo, activityRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, tableRepo, menuRepo)
	kitchen := models.Actor{UserID: 3, UserName: "Şef", Role: models.RoleKitchen}

	for _, status := range []string{models.OrderStatusPreparing, models.OrderStatusReady} {
		updated, err := svc.TransitionStatus(order.ID, status, kitchen)
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status = %q, want %q", updated.Status, status)
		}
		if updated.Total != order.Total {
			t.Errorf("total changed during transition: %v -> %v", order.Total, updated.Total)
		}
	}

	completed, err := svc.TransitionStatus(order.ID, models.OrderStatusCompleted, waiterActor())
	if err != nil {
		t.Fatalf("waiter completing ready order: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Error("completed order has no completion timestamp")
	}

	want := []string{
		models.ActivityOrderCreated,
		models.ActivityOrderUpdated,
		models.ActivityOrderUpdated,
		models.ActivityOrderCompleted,
	}
	got := activityRepo.types()
	if len(got) != len(want) {
		t.Fatalf("audit trail = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("audit[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTransitionStatusRolePolicy(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		from    string
		to      string
		wantErr error
	}{
		{"kitchen advances pending", models.RoleKitchen, models.OrderStatusPending, models.OrderStatusPreparing, nil},
		{"admin advances pending", models.RoleAdmin, models.OrderStatusPending, models.OrderStatusPreparing, nil},
		{"manager advances preparing", models.RoleManager, models.OrderStatusPreparing, models.OrderStatusReady, nil},
		{"waiter completes ready", models.RoleWaiter, models.OrderStatusReady, models.OrderStatusCompleted, nil},
		{"waiter advances pending", models.RoleWaiter, models.OrderStatusPending, models.OrderStatusPreparing, ErrRoleForbidden},
		{"waiter cancels", models.RoleWaiter, models.OrderStatusPending, models.OrderStatusCancelled, ErrRoleForbidden},
		{"cashier advances pending", models.RoleCashier, models.OrderStatusPending, models.OrderStatusPreparing, ErrRoleForbidden},
		{"cashier completes ready", models.RoleCashier, models.OrderStatusReady, models.OrderStatusCompleted, ErrRoleForbidden},
		{"unknown role", "stajyer", models.OrderStatusPending, models.OrderStatusPreparing, ErrRoleForbidden},
		{"admin skips a step", models.RoleAdmin, models.OrderStatusPending, models.OrderStatusReady, ErrInvalidTransition},
		{"kitchen moves backwards", models.RoleKitchen, models.OrderStatusReady, models.OrderStatusPreparing, ErrInvalidTransition},
		{"admin cancels preparing", models.RoleAdmin, models.OrderStatusPreparing, models.OrderStatusCancelled, nil},
		{"kitchen cancels pending", models.RoleKitchen, models.OrderStatusPending, models.OrderStatusCancelled, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, orderRepo, tableRepo, menuRepo, _, _ := newOrderServiceForTest()
			order := createTestOrder(t, svc, tableRepo, menuRepo)
			orderRepo.orders[order.ID].Status = tc.from

			_, err := svc.TransitionStatus(order.ID, tc.to, models.Actor{UserID: 2, UserName: "Test", Role: tc.role})
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("got %v, want success", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
			// A rejected transition must leave the order untouched.
			stored, _ := orderRepo.GetOrderByID(order.ID)
			if stored.Status != tc.from {
				t.Errorf("order mutated on rejected transition: %q -> %q", tc.from, stored.Status)
			}
		})
	}
}

func TestTransitionStatusTerminalOrders(t *testing.T) {
	for _, terminal := range []string{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		for _, role := range []string{models.RoleAdmin, models.RoleKitchen, models.RoleWaiter, models.RoleCashier} {
			svc, orderRepo, tableRepo, menuRepo, activityRepo, _ := newOrderServiceForTest()
			order := createTestOrder(t, svc, tableRepo, menuRepo)
			orderRepo.orders[order.ID].Status = terminal
			auditBefore := len(activityRepo.entries)

			_, err := svc.TransitionStatus(order.ID, models.OrderStatusPreparing, models.Actor{UserID: 2, Role: role})
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s on %s order: got %v, want ErrInvalidTransition", role, terminal, err)
			}
			// A rejected transition must not reach the audit trail.
			if len(activityRepo.entries) != auditBefore {
				t.Errorf("%s on %s order: audit trail grew from %d to %d entries",
					role, terminal, auditBefore, len(activityRepo.entries))
			}
		}
	}
}

func TestTransitionStatusNotFound(t *testing.T) {
	svc, _, _, _, _, _ := newOrderServiceForTest()
	if _, err := svc.TransitionStatus(42, models.OrderStatusPreparing, adminActor()); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound", err)
	}
}

func TestTransitionStatusUnknownStatus(t *testing.T) {
	svc, _, tableRepo, menuRepo, _, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, tableRepo, menuRepo)
	if _, err := svc.TransitionStatus(order.ID, "uçtu", adminActor()); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestTransitionToReadyNotifiesWaiters(t *testing.T) {
	svc, orderRepo, tableRepo, menuRepo, _, n := newOrderServiceForTest()
	order := createTestOrder(t, svc, tableRepo, menuRepo)
	orderRepo.orders[order.ID].Status = models.OrderStatusPreparing

	if _, err := svc.TransitionStatus(order.ID, models.OrderStatusReady, adminActor()); err != nil {
		t.Fatalf("transition to ready: %v", err)
	}
	if len(n.events) != 1 {
		t.Fatalf("published %d events, want 1", len(n.events))
	}
	event := n.events[0]
	if event.Kind != models.NotificationOrderReady {
		t.Errorf("event kind = %q, want %q", event.Kind, models.NotificationOrderReady)
	}
	if len(event.TargetRoles) != 1 || event.TargetRoles[0] != models.RoleWaiter {
		t.Errorf("event targets = %v, want [waiter]", event.TargetRoles)
	}
}

func TestNotifierFailureDoesNotFailTransition(t *testing.T) {
	svc, orderRepo, tableRepo, menuRepo, _, n := newOrderServiceForTest()
	order := createTestOrder(t, svc, tableRepo, menuRepo)
	orderRepo.orders[order.ID].Status = models.OrderStatusPreparing
	n.err = errors.New("broker down")

	updated, err := svc.TransitionStatus(order.ID, models.OrderStatusReady, adminActor())
	if err != nil {
		t.Fatalf("transition should succeed despite notifier failure: %v", err)
	}
	if updated.Status != models.OrderStatusReady {
		t.Errorf("status = %q, want %q", updated.Status, models.OrderStatusReady)
	}
}

func TestAuditFailureDoesNotFailTransition(t *testing.T) {
	svc, orderRepo, tableRepo, menuRepo, activityRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, tableRepo, menuRepo)
	activityRepo.err = errors.New("log table unavailable")

	updated, err := svc.TransitionStatus(order.ID, models.OrderStatusPreparing, adminActor())
	if err != nil {
		t.Fatalf("transition should succeed despite audit failure: %v", err)
	}
	if updated.Status != models.OrderStatusPreparing {
		t.Errorf("status = %q, want %q", updated.Status, models.OrderStatusPreparing)
	}
	stored, _ := orderRepo.GetOrderByID(order.ID)
	if stored.Status != models.OrderStatusPreparing {
		t.Errorf("stored status = %q, want committed change", stored.Status)
	}
}

func TestGetKitchenOrders(t *testing.T) {
	svc, orderRepo, tableRepo, menuRepo, _, _ := newOrderServiceForTest()

	coffee := menuRepo.addItem("Latte", "ice_latte", 100)
	soda := menuRepo.addItem("Soda", "drinks", 30)

	kitchenTable := tableRepo.addTable("1", models.TableStatusAvailable)
	kitchenOrder, err := svc.CreateOrder(CreateOrderRequest{
		TableID: kitchenTable.ID,
		Items:   []CreateOrderItemRequest{{MenuItemID: coffee.ID, Quantity: 1}},
	}, waiterActor())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	barTable := tableRepo.addTable("2", models.TableStatusAvailable)
	if _, err := svc.CreateOrder(CreateOrderRequest{
		TableID: barTable.ID,
		Items:   []CreateOrderItemRequest{{MenuItemID: soda.ID, Quantity: 1}},
	}, waiterActor()); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	kitchenView, err := svc.GetKitchenOrders(models.RoleKitchen)
	if err != nil {
		t.Fatalf("GetKitchenOrders(kitchen): %v", err)
	}
	if len(kitchenView) != 1 || kitchenView[0].ID != kitchenOrder.ID {
		t.Errorf("kitchen view = %v, want only the kitchen-category order", kitchenView)
	}

	cashierView, err := svc.GetKitchenOrders(models.RoleCashier)
	if err != nil {
		t.Fatalf("GetKitchenOrders(cashier): %v", err)
	}
	if len(cashierView) != 0 {
		t.Errorf("cashier view has %d orders, want 0", len(cashierView))
	}

	// Roles outside the vocabulary get the same empty view as cashiers.
	unknownView, err := svc.GetKitchenOrders("stajyer")
	if err != nil {
		t.Fatalf("GetKitchenOrders(unknown role): %v", err)
	}
	if len(unknownView) != 0 {
		t.Errorf("unknown-role view has %d orders, want 0", len(unknownView))
	}

	// Waiters only see orders that are ready for service.
	waiterView, err := svc.GetKitchenOrders(models.RoleWaiter)
	if err != nil {
		t.Fatalf("GetKitchenOrders(waiter): %v", err)
	}
	if len(waiterView) != 0 {
		t.Errorf("waiter view has %d pending orders, want 0", len(waiterView))
	}
	orderRepo.orders[kitchenOrder.ID].Status = models.OrderStatusReady
	waiterView, _ = svc.GetKitchenOrders(models.RoleWaiter)
	if len(waiterView) != 1 {
		t.Errorf("waiter view has %d ready orders, want 1", len(waiterView))
	}
}
