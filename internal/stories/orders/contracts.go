package orders

import "context"

type (
	Repository interface {
		SavePendingOrder(ctx context.Context, order PendingOrder) (*PendingOrder, error)
		DeletePendingOrder(ctx context.Context, userID int64) (bool, error)
		// ConfirmPendingOrder debits the balance, records the order and drops
		// the pending order in one transaction.
		ConfirmPendingOrder(ctx context.Context, userID int64, orderID string) (*Confirmation, error)
		ListOrders(ctx context.Context, criteria ListCriteria) ([]*Order, error)
	}

	IDGenerator interface {
		OrderID() string
	}
)
