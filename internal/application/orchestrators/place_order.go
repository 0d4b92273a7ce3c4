package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/menu"
	"cafepc/internal/domain/useraccount"
)

// UserStoreForOrders defines the account interface needed by PlaceOrder.
type UserStoreForOrders interface {
	GetByUsername(ctx context.Context, username string) (useraccount.Account, error)
	Save(ctx context.Context, a useraccount.Account) error
}

// PlaceOrderInput carries input for the order orchestrator.
type PlaceOrderInput struct {
	Username string
	ItemCode string
}

// PlaceOrderDeps holds dependencies for PlaceOrder.
type PlaceOrderDeps struct {
	UserStore UserStoreForOrders
	Catalog   *menu.Catalog
	AuditLog  AuditLog
}

// PlaceOrderResult carries what was ordered and the new balance.
type PlaceOrderResult struct {
	Item   menu.Item
	Points int // balance after the order
}

// ExecutePlaceOrder records a counter order and credits loyalty points.
// Money changes hands at the counter; the ledger only tracks points.
// PRE: Customer is approved; item code exists in the catalog
// POST: Points increased by the item's credit
func ExecutePlaceOrder(ctx context.Context, input PlaceOrderInput, deps PlaceOrderDeps) (PlaceOrderResult, error) {
	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if !acct.IsApproved() {
		return PlaceOrderResult{}, useraccount.ErrNotApproved
	}

	item, err := deps.Catalog.Get(input.ItemCode)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	acct.Points += item.Points
	if err := deps.UserStore.Save(ctx, acct); err != nil {
		return PlaceOrderResult{}, err
	}

	slog.Info("cafe_event", "event", "order_placed", "username", acct.Username, "item", item.Code, "points", acct.Points)
	recordAudit(ctx, deps.AuditLog, audit.CategoryCafe, audit.ActionOrder, acct.Username, item.Code,
		fmt.Sprintf("%s, +%d points", item.Name, item.Points))

	return PlaceOrderResult{Item: item, Points: acct.Points}, nil
}
