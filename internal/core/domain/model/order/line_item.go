package order

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via
// NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable value object describing one purchased product line:
// the product, its display name at purchase time, the quantity and the unit
// price. Prices are integer cents to avoid floating point money.
type LineItem struct { //nolint:recvcheck //using for validation
	productID      kernel.UUID
	name           string
	quantity       int
	unitPriceCents int64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item.
// Quantity must be positive and the unit price non-negative.
func NewLineItem(productID kernel.UUID, name string, quantity int, unitPriceCents int64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPriceCents(unitPriceCents),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the catalog product identifier.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product display name captured at purchase time.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns the purchased quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the unit price in cents.
func (i LineItem) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// SubtotalCents returns quantity times unit price.
func (i LineItem) SubtotalCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	i.productID = productID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPriceCents(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidError("unitPriceCents")
	}

	i.unitPriceCents = unitPriceCents
	return nil
}
