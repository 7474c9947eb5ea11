package model

// DiscountWebhookPayload is the body of discounts/create, discounts/update
// and discounts/delete webhooks. AdminGraphqlAPIID is the remote global id.
type DiscountWebhookPayload struct {
	AdminGraphqlAPIID string `json:"admin_graphql_api_id"`
	Title             string `json:"title"`
	Status            string `json:"status"`
}

// OrderDiscountCode is one discount application on an inbound order.
type OrderDiscountCode struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// OrderWebhookPayload is the body of the orders/create webhook, reduced to
// the fields the reconciler reads.
type OrderWebhookPayload struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	DiscountCodes []OrderDiscountCode `json:"discount_codes"`
}

// CustomerWebhookPayload is the body of the customers/create webhook.
type CustomerWebhookPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
