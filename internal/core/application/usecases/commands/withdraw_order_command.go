package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrWithdrawOrderCommandIsNotConstructed = errors.New(
	"WithdrawOrderCommand must be created via NewWithdrawOrderCommand constructor",
)

// WithdrawOrderCommand represents an owner's request to cancel an order.
// Only the owner may withdraw, and only while the order is Pending or Reserved.
type WithdrawOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	owner   string

	guard guard.ConstructorGuard
}

// NewWithdrawOrderCommand creates a command to cancel an order on behalf of
// its owner. Validates that the order ID is valid and the owner is not empty.
func NewWithdrawOrderCommand(orderID kernel.UUID, owner string) (WithdrawOrderCommand, error) {
	withdrawCommand := WithdrawOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawCommand.setOrderID(orderID),
		withdrawCommand.setOwner(owner),
	); err != nil {
		return WithdrawOrderCommand{}, err
	}

	return withdrawCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrWithdrawOrderCommandIsNotConstructed if validation fails.
func (c WithdrawOrderCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to withdraw.
func (c WithdrawOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Owner returns the identity requesting the withdrawal.
func (c WithdrawOrderCommand) Owner() string {
	return c.owner
}

func (c *WithdrawOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *WithdrawOrderCommand) setOwner(owner string) error {
	if owner == "" {
		return ErrOwnerIsRequired
	}

	c.owner = owner
	return nil
}
