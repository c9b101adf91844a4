// Package commands contains the business operations that modify order state.
// All commands follow a consistent pattern: constructor validation, commit
// through a unit of work, and only then distribution of the outcome through
// the event announcer. A failed commit produces no distribution.
package commands

import (
	"context"

	"tableserve/internal/core/application/services"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages a transaction around order writes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a fresh unit of work per business operation.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// EventAnnouncer is the distribution contract the handlers hand
	// committed changes to. Announcements never fail the caller; the
	// returned report describes what each channel managed to deliver.
	EventAnnouncer interface {
		AnnounceCreated(o *order.Order) services.DeliveryReport
		AnnounceTransition(o *order.Order, from, to order.Status,
			dispatchRequired, automated bool, source string) services.DeliveryReport
	}
)
