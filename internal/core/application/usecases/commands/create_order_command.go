package commands

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput carries one line item of a new order.
type ItemInput struct {
	ProductID      kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// CreateOrderCommand represents a request to register a new order between a
// contractor and a supplier. Line item validation is left to the order
// aggregate; the command only checks presence.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	number       string
	contractorID kernel.UUID
	supplierID   kernel.UUID
	items        []ItemInput
	actorRole    services.Role

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	items []ItemInput,
	actorRole services.Role,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNumber(number),
		cmd.setParties(contractorID, supplierID),
		cmd.setItems(items),
		cmd.setActorRole(actorRole),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-readable order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// ContractorID returns the buyer's identifier.
func (c CreateOrderCommand) ContractorID() kernel.UUID {
	return c.contractorID
}

// SupplierID returns the seller's identifier.
func (c CreateOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []ItemInput {
	items := make([]ItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// ActorRole returns the role of the caller.
func (c CreateOrderCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	c.number = number
	return nil
}

func (c *CreateOrderCommand) setParties(contractorID, supplierID kernel.UUID) error {
	if err := errors.Join(contractorID.Validate(), supplierID.Validate()); err != nil {
		return err
	}
	c.contractorID = contractorID
	c.supplierID = supplierID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = make([]ItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}

// now is the single clock source for command handlers; tests do not override
// it because handlers never compare times.
func now() time.Time {
	return time.Now().UTC()
}
