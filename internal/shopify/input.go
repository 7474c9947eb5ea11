package shopify

import "time"

// TargetSelection is a normalised description of what a discount applies to.
// Product ids win over collection ids; with neither, the discount applies to
// everything. Add and remove lists are independent so update mutations can
// carry both.
type TargetSelection struct {
	AddProductIDs       []string
	RemoveProductIDs    []string
	AddCollectionIDs    []string
	RemoveCollectionIDs []string
}

// Items renders the selection into the wire items shape.
func (t TargetSelection) Items() *DiscountItemsInput {
	if len(t.AddProductIDs) > 0 || len(t.RemoveProductIDs) > 0 {
		return &DiscountItemsInput{
			Products: &DiscountProductsInput{
				ProductsToAdd:    t.AddProductIDs,
				ProductsToRemove: t.RemoveProductIDs,
			},
		}
	}
	if len(t.AddCollectionIDs) > 0 || len(t.RemoveCollectionIDs) > 0 {
		return &DiscountItemsInput{
			Collections: &DiscountCollectionsInput{
				Add:    t.AddCollectionIDs,
				Remove: t.RemoveCollectionIDs,
			},
		}
	}
	return &DiscountItemsInput{All: true}
}

// CustomerSelection renders an explicit customer selection, or all customers
// when no ids are given.
func CustomerSelection(addIDs, removeIDs []string) *DiscountCustomerSelectionInput {
	if len(addIDs) > 0 || len(removeIDs) > 0 {
		return &DiscountCustomerSelectionInput{
			Customers: &DiscountCustomersInput{
				Add:    addIDs,
				Remove: removeIDs,
			},
		}
	}
	return &DiscountCustomerSelectionInput{All: true}
}

// DiscountItemsInput selects the products or collections a discount targets.
type DiscountItemsInput struct {
	All         bool                      `json:"all,omitempty"`
	Products    *DiscountProductsInput    `json:"products,omitempty"`
	Collections *DiscountCollectionsInput `json:"collections,omitempty"`
}

// DiscountProductsInput adds or removes product targets.
type DiscountProductsInput struct {
	ProductsToAdd    []string `json:"productsToAdd,omitempty"`
	ProductsToRemove []string `json:"productsToRemove,omitempty"`
}

// DiscountCollectionsInput adds or removes collection targets.
type DiscountCollectionsInput struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

// DiscountCustomerSelectionInput selects which customers may redeem.
type DiscountCustomerSelectionInput struct {
	All       bool                    `json:"all,omitempty"`
	Customers *DiscountCustomersInput `json:"customers,omitempty"`
}

// DiscountCustomersInput adds or removes explicit customer ids.
type DiscountCustomersInput struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

// DiscountAmountInput is a flat monetary discount, used for shipping scope.
type DiscountAmountInput struct {
	Amount            float64 `json:"amount"`
	AppliesOnEachItem bool    `json:"appliesOnEachItem,omitempty"`
}

// DiscountCustomerGetsValueInput is the benefit value: a fraction (0..1) or a
// flat amount, never both.
type DiscountCustomerGetsValueInput struct {
	Percentage     *float64             `json:"percentage,omitempty"`
	DiscountAmount *DiscountAmountInput `json:"discountAmount,omitempty"`
}

// DiscountCustomerGetsInput is the benefit side of a basic discount.
type DiscountCustomerGetsInput struct {
	Value *DiscountCustomerGetsValueInput `json:"value,omitempty"`
	Items *DiscountItemsInput             `json:"items,omitempty"`
}

// DiscountCodeBasicInput is the input for discountCodeBasicCreate/Update.
type DiscountCodeBasicInput struct {
	Title                  string                          `json:"title,omitempty"`
	Code                   string                          `json:"code,omitempty"`
	StartsAt               *time.Time                      `json:"startsAt,omitempty"`
	EndsAt                 *time.Time                      `json:"endsAt,omitempty"`
	UsageLimit             *int                            `json:"usageLimit,omitempty"`
	AppliesOncePerCustomer bool                            `json:"appliesOncePerCustomer,omitempty"`
	CustomerSelection      *DiscountCustomerSelectionInput `json:"customerSelection,omitempty"`
	CustomerGets           *DiscountCustomerGetsInput      `json:"customerGets,omitempty"`
}

// DiscountAutomaticBasicInput is the input for discountAutomaticBasicCreate/
// Update. Automatic discounts carry no code, usage limit or customer
// selection.
type DiscountAutomaticBasicInput struct {
	Title        string                     `json:"title,omitempty"`
	StartsAt     *time.Time                 `json:"startsAt,omitempty"`
	EndsAt       *time.Time                 `json:"endsAt,omitempty"`
	CustomerGets *DiscountCustomerGetsInput `json:"customerGets,omitempty"`
}

// DiscountCustomerBuysValueInput is the purchase threshold of a Bxgy
// discount. Quantity is a string per the platform's UnsignedInt64 scalar.
type DiscountCustomerBuysValueInput struct {
	Quantity string `json:"quantity,omitempty"`
}

// DiscountCustomerBuysInput is the "buy X" side of a Bxgy discount.
type DiscountCustomerBuysInput struct {
	Value *DiscountCustomerBuysValueInput `json:"value,omitempty"`
	Items *DiscountItemsInput             `json:"items,omitempty"`
}

// DiscountEffectInput is the reward applied to the "get Y" items.
type DiscountEffectInput struct {
	Percentage *float64 `json:"percentage,omitempty"`
}

// DiscountOnQuantityInput rewards a fixed quantity of the target items.
type DiscountOnQuantityInput struct {
	Quantity string               `json:"quantity,omitempty"`
	Effect   *DiscountEffectInput `json:"effect,omitempty"`
}

// DiscountCustomerGetsBxgyValueInput is the benefit value of a Bxgy discount.
type DiscountCustomerGetsBxgyValueInput struct {
	DiscountOnQuantity *DiscountOnQuantityInput `json:"discountOnQuantity,omitempty"`
}

// DiscountCustomerGetsBxgyInput is the "get Y" side of a Bxgy discount.
type DiscountCustomerGetsBxgyInput struct {
	Value *DiscountCustomerGetsBxgyValueInput `json:"value,omitempty"`
	Items *DiscountItemsInput                 `json:"items,omitempty"`
}

// DiscountCodeBxgyInput is the input for discountCodeBxgyCreate/Update.
type DiscountCodeBxgyInput struct {
	Title             string                         `json:"title,omitempty"`
	Code              string                         `json:"code,omitempty"`
	StartsAt          *time.Time                     `json:"startsAt,omitempty"`
	EndsAt            *time.Time                     `json:"endsAt,omitempty"`
	UsageLimit        *int                           `json:"usageLimit,omitempty"`
	UsesPerOrderLimit *int                           `json:"usesPerOrderLimit,omitempty"`
	CustomerBuys      *DiscountCustomerBuysInput     `json:"customerBuys,omitempty"`
	CustomerGets      *DiscountCustomerGetsBxgyInput `json:"customerGets,omitempty"`
}

// DiscountAutomaticBxgyInput is the input for discountAutomaticBxgyCreate/
// Update.
type DiscountAutomaticBxgyInput struct {
	Title             string                         `json:"title,omitempty"`
	StartsAt          *time.Time                     `json:"startsAt,omitempty"`
	EndsAt            *time.Time                     `json:"endsAt,omitempty"`
	UsesPerOrderLimit *int                           `json:"usesPerOrderLimit,omitempty"`
	CustomerBuys      *DiscountCustomerBuysInput     `json:"customerBuys,omitempty"`
	CustomerGets      *DiscountCustomerGetsBxgyInput `json:"customerGets,omitempty"`
}
