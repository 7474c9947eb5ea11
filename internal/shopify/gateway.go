package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"discount-manager/internal/model"

	"github.com/rs/zerolog"
)

// RemoteDiscount is the subset of remote discount state mirrored locally.
type RemoteDiscount struct {
	ID         string
	Title      string
	Code       string
	Codes      []string
	Status     string
	StartsAt   time.Time
	EndsAt     *time.Time
	Percentage float64 // fraction, 0..1
	UsageLimit int
	UsageCount int
}

// Product is a catalog product summary.
type Product struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Status string `json:"status"`
}

// Collection is a catalog collection summary.
type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Customer is a customer summary.
type Customer struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Segment is a customer segment summary.
type Segment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
}

// Gateway is the remote platform boundary. Every method maps to exactly one
// GraphQL operation against the shop's Admin API.
type Gateway interface {
	CreateBasicCode(ctx context.Context, sess *model.Session, input DiscountCodeBasicInput) (*RemoteDiscount, error)
	CreateBasicAutomatic(ctx context.Context, sess *model.Session, input DiscountAutomaticBasicInput) (*RemoteDiscount, error)
	UpdateBasicCode(ctx context.Context, sess *model.Session, id string, input DiscountCodeBasicInput) (*RemoteDiscount, error)
	UpdateBasicAutomatic(ctx context.Context, sess *model.Session, id string, input DiscountAutomaticBasicInput) (*RemoteDiscount, error)

	CreateBxgyCode(ctx context.Context, sess *model.Session, input DiscountCodeBxgyInput) (*RemoteDiscount, error)
	CreateBxgyAutomatic(ctx context.Context, sess *model.Session, input DiscountAutomaticBxgyInput) (*RemoteDiscount, error)
	UpdateBxgyCode(ctx context.Context, sess *model.Session, id string, input DiscountCodeBxgyInput) (*RemoteDiscount, error)
	UpdateBxgyAutomatic(ctx context.Context, sess *model.Session, id string, input DiscountAutomaticBxgyInput) (*RemoteDiscount, error)

	DeleteCode(ctx context.Context, sess *model.Session, id string) (string, error)
	DeleteAutomatic(ctx context.Context, sess *model.Session, id string) (string, error)
	AddRedeemCodes(ctx context.Context, sess *model.Session, discountID string, codes []string) error
	DeleteRedeemCodes(ctx context.Context, sess *model.Session, discountID string, codes []string) error
	ListRedeemCodes(ctx context.Context, sess *model.Session, discountID string) ([]string, error)

	GetCodeDiscount(ctx context.Context, sess *model.Session, id string) (*RemoteDiscount, error)
	GetAutomaticDiscount(ctx context.Context, sess *model.Session, id string) (*RemoteDiscount, error)
	GetUsageCount(ctx context.Context, sess *model.Session, id string) (int, error)

	ListProducts(ctx context.Context, sess *model.Session, first int, query string) ([]Product, error)
	ListCollections(ctx context.Context, sess *model.Session, first int, query string) ([]Collection, error)
	ListCustomers(ctx context.Context, sess *model.Session, first int, query string) ([]Customer, error)
	ListSegments(ctx context.Context, sess *model.Session, first int) ([]Segment, error)
}

// gateway implements Gateway on top of the GraphQL client.
type gateway struct {
	client *Client
	logger zerolog.Logger
}

// NewGateway creates a new Admin API gateway.
func NewGateway(client *Client, logger zerolog.Logger) Gateway {
	return &gateway{
		client: client,
		logger: logger.With().Str("component", "shopify-gateway").Logger(),
	}
}

// discountNode is the wire shape shared by code and automatic discount nodes.
type discountNode struct {
	ID           string           `json:"id"`
	CodeDiscount *discountPayload `json:"codeDiscount"`
	Automatic    *discountPayload `json:"automaticDiscount"`
}

type discountPayload struct {
	Title           string     `json:"title"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	Status          string     `json:"status"`
	UsageLimit      *int       `json:"usageLimit"`
	AsyncUsageCount int        `json:"asyncUsageCount"`
	CustomerGets    *struct {
		Value struct {
			Percentage float64 `json:"percentage"`
		} `json:"value"`
	} `json:"customerGets"`
	Codes *struct {
		Nodes []struct {
			Code string `json:"code"`
		} `json:"nodes"`
	} `json:"codes"`
}

func (n *discountNode) toRemote() *RemoteDiscount {
	if n == nil || n.ID == "" {
		return nil
	}
	p := n.CodeDiscount
	if p == nil {
		p = n.Automatic
	}
	if p == nil {
		return nil
	}
	rd := &RemoteDiscount{
		ID:         n.ID,
		Title:      p.Title,
		StartsAt:   p.StartsAt,
		EndsAt:     p.EndsAt,
		Status:     p.Status,
		UsageCount: p.AsyncUsageCount,
	}
	if p.UsageLimit != nil {
		rd.UsageLimit = *p.UsageLimit
	}
	if p.CustomerGets != nil {
		rd.Percentage = p.CustomerGets.Value.Percentage
	}
	if p.Codes != nil {
		for _, c := range p.Codes.Nodes {
			rd.Codes = append(rd.Codes, c.Code)
		}
		if len(rd.Codes) > 0 {
			rd.Code = rd.Codes[0]
		}
	}
	return rd
}

// mutationPayload is the common shape of discount mutation results keyed by
// the node field name.
type mutationPayload struct {
	CodeDiscountNode      *discountNode `json:"codeDiscountNode"`
	AutomaticDiscountNode *discountNode `json:"automaticDiscountNode"`
	UserErrors            []UserError   `json:"userErrors"`
}

// runMutation executes a discount mutation and unwraps the node payload under
// the given root field.
func (g *gateway) runMutation(ctx context.Context, sess *model.Session, document, rootField string, variables map[string]interface{}) (*RemoteDiscount, error) {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, document, variables)
	if err != nil {
		return nil, err
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", rootField, err)
	}

	var payload mutationPayload
	if raw, ok := root[rootField]; ok {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse %s payload: %w", rootField, err)
		}
	}

	if err := AggregateUserErrors(payload.UserErrors); err != nil {
		return nil, err
	}

	node := payload.CodeDiscountNode
	if node == nil {
		node = payload.AutomaticDiscountNode
	}
	rd := node.toRemote()
	if rd == nil {
		return nil, fmt.Errorf("%s returned no discount node", rootField)
	}
	return rd, nil
}

func (g *gateway) CreateBasicCode(ctx context.Context, sess *model.Session, input DiscountCodeBasicInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountCodeBasicCreateMutation, "discountCodeBasicCreate",
		map[string]interface{}{"basicCodeDiscount": input})
}

func (g *gateway) CreateBasicAutomatic(ctx context.Context, sess *model.Session, input DiscountAutomaticBasicInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountAutomaticBasicCreateMutation, "discountAutomaticBasicCreate",
		map[string]interface{}{"automaticBasicDiscount": input})
}

func (g *gateway) UpdateBasicCode(ctx context.Context, sess *model.Session, id string, input DiscountCodeBasicInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountCodeBasicUpdateMutation, "discountCodeBasicUpdate",
		map[string]interface{}{"id": id, "basicCodeDiscount": input})
}

func (g *gateway) UpdateBasicAutomatic(ctx context.Context, sess *model.Session, id string, input DiscountAutomaticBasicInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountAutomaticBasicUpdateMutation, "discountAutomaticBasicUpdate",
		map[string]interface{}{"id": id, "automaticBasicDiscount": input})
}

func (g *gateway) CreateBxgyCode(ctx context.Context, sess *model.Session, input DiscountCodeBxgyInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountCodeBxgyCreateMutation, "discountCodeBxgyCreate",
		map[string]interface{}{"bxgyCodeDiscount": input})
}

func (g *gateway) CreateBxgyAutomatic(ctx context.Context, sess *model.Session, input DiscountAutomaticBxgyInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountAutomaticBxgyCreateMutation, "discountAutomaticBxgyCreate",
		map[string]interface{}{"automaticBxgyDiscount": input})
}

func (g *gateway) UpdateBxgyCode(ctx context.Context, sess *model.Session, id string, input DiscountCodeBxgyInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountCodeBxgyUpdateMutation, "discountCodeBxgyUpdate",
		map[string]interface{}{"id": id, "bxgyCodeDiscount": input})
}

func (g *gateway) UpdateBxgyAutomatic(ctx context.Context, sess *model.Session, id string, input DiscountAutomaticBxgyInput) (*RemoteDiscount, error) {
	return g.runMutation(ctx, sess, discountAutomaticBxgyUpdateMutation, "discountAutomaticBxgyUpdate",
		map[string]interface{}{"id": id, "automaticBxgyDiscount": input})
}

// deleteDiscount runs either delete mutation and returns the confirmed
// deleted id.
func (g *gateway) deleteDiscount(ctx context.Context, sess *model.Session, document, rootField, idField, id string) (string, error) {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, document, map[string]interface{}{"id": id})
	if err != nil {
		return "", err
	}

	var root map[string]struct {
		DeletedCodeDiscountID      string      `json:"deletedCodeDiscountId"`
		DeletedAutomaticDiscountID string      `json:"deletedAutomaticDiscountId"`
		UserErrors                 []UserError `json:"userErrors"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return "", fmt.Errorf("failed to parse %s payload: %w", rootField, err)
	}

	payload := root[rootField]
	if err := AggregateUserErrors(payload.UserErrors); err != nil {
		return "", err
	}

	deleted := payload.DeletedCodeDiscountID
	if idField == "deletedAutomaticDiscountId" {
		deleted = payload.DeletedAutomaticDiscountID
	}
	if deleted == "" {
		return "", fmt.Errorf("%s did not confirm deletion of %s", rootField, id)
	}
	return deleted, nil
}

func (g *gateway) DeleteCode(ctx context.Context, sess *model.Session, id string) (string, error) {
	return g.deleteDiscount(ctx, sess, discountCodeDeleteMutation, "discountCodeDelete", "deletedCodeDiscountId", id)
}

func (g *gateway) DeleteAutomatic(ctx context.Context, sess *model.Session, id string) (string, error) {
	return g.deleteDiscount(ctx, sess, discountAutomaticDeleteMutation, "discountAutomaticDelete", "deletedAutomaticDiscountId", id)
}

func (g *gateway) AddRedeemCodes(ctx context.Context, sess *model.Session, discountID string, codes []string) error {
	codeInputs := make([]map[string]string, 0, len(codes))
	for _, code := range codes {
		codeInputs = append(codeInputs, map[string]string{"code": code})
	}

	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, discountRedeemCodeBulkAddMutation,
		map[string]interface{}{"discountId": discountID, "codes": codeInputs})
	if err != nil {
		return err
	}

	var root struct {
		DiscountRedeemCodeBulkAdd struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"discountRedeemCodeBulkAdd"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse discountRedeemCodeBulkAdd payload: %w", err)
	}
	return AggregateUserErrors(root.DiscountRedeemCodeBulkAdd.UserErrors)
}

func (g *gateway) DeleteRedeemCodes(ctx context.Context, sess *model.Session, discountID string, codes []string) error {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, discountCodeRedeemCodeBulkDeleteMutation,
		map[string]interface{}{"discountId": discountID, "search": strings.Join(codes, " OR ")})
	if err != nil {
		return err
	}

	var root struct {
		DiscountCodeRedeemCodeBulkDelete struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"discountCodeRedeemCodeBulkDelete"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse discountCodeRedeemCodeBulkDelete payload: %w", err)
	}
	return AggregateUserErrors(root.DiscountCodeRedeemCodeBulkDelete.UserErrors)
}

func (g *gateway) ListRedeemCodes(ctx context.Context, sess *model.Session, discountID string) ([]string, error) {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, redeemCodesQuery,
		map[string]interface{}{"id": discountID, "first": 250})
	if err != nil {
		return nil, err
	}

	var root struct {
		CodeDiscountNode *discountNode `json:"codeDiscountNode"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse redeem codes payload: %w", err)
	}

	rd := root.CodeDiscountNode.toRemote()
	if rd == nil {
		return nil, fmt.Errorf("code discount %s not found", discountID)
	}
	return rd.Codes, nil
}

// getDiscount fetches a discount node by id. A missing node returns
// (nil, nil); callers treat absence as meaningful, not as a failure.
func (g *gateway) getDiscount(ctx context.Context, sess *model.Session, document, rootField, id string) (*RemoteDiscount, error) {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, document, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	var root map[string]*discountNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", rootField, err)
	}

	return root[rootField].toRemote(), nil
}

func (g *gateway) GetCodeDiscount(ctx context.Context, sess *model.Session, id string) (*RemoteDiscount, error) {
	return g.getDiscount(ctx, sess, codeDiscountNodeQuery, "codeDiscountNode", id)
}

func (g *gateway) GetAutomaticDiscount(ctx context.Context, sess *model.Session, id string) (*RemoteDiscount, error) {
	return g.getDiscount(ctx, sess, automaticDiscountNodeQuery, "automaticDiscountNode", id)
}

func (g *gateway) GetUsageCount(ctx context.Context, sess *model.Session, id string) (int, error) {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, codeDiscountUsageQuery,
		map[string]interface{}{"id": id})
	if err != nil {
		return 0, err
	}

	var root struct {
		CodeDiscountNode *struct {
			CodeDiscount struct {
				AsyncUsageCount int `json:"asyncUsageCount"`
			} `json:"codeDiscount"`
		} `json:"codeDiscountNode"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return 0, fmt.Errorf("failed to parse usage payload: %w", err)
	}
	if root.CodeDiscountNode == nil {
		return 0, fmt.Errorf("code discount %s not found", id)
	}
	return root.CodeDiscountNode.CodeDiscount.AsyncUsageCount, nil
}

// listNodes runs a catalog list query and unmarshals the nodes array under
// root[field].nodes into out.
func (g *gateway) listNodes(ctx context.Context, sess *model.Session, document, field string, variables map[string]interface{}, out interface{}) error {
	data, err := g.client.Execute(ctx, sess.Shop, sess.AccessToken, document, variables)
	if err != nil {
		return err
	}

	var root map[string]struct {
		Nodes json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", field, err)
	}
	if len(root[field].Nodes) == 0 {
		return nil
	}
	if err := json.Unmarshal(root[field].Nodes, out); err != nil {
		return fmt.Errorf("failed to parse %s nodes: %w", field, err)
	}
	return nil
}

func (g *gateway) ListProducts(ctx context.Context, sess *model.Session, first int, query string) ([]Product, error) {
	var products []Product
	err := g.listNodes(ctx, sess, productsQuery, "products",
		map[string]interface{}{"first": first, "query": query}, &products)
	return products, err
}

func (g *gateway) ListCollections(ctx context.Context, sess *model.Session, first int, query string) ([]Collection, error) {
	var collections []Collection
	err := g.listNodes(ctx, sess, collectionsQuery, "collections",
		map[string]interface{}{"first": first, "query": query}, &collections)
	return collections, err
}

func (g *gateway) ListCustomers(ctx context.Context, sess *model.Session, first int, query string) ([]Customer, error) {
	var customers []Customer
	err := g.listNodes(ctx, sess, customersQuery, "customers",
		map[string]interface{}{"first": first, "query": query}, &customers)
	return customers, err
}

func (g *gateway) ListSegments(ctx context.Context, sess *model.Session, first int) ([]Segment, error) {
	var segments []Segment
	err := g.listNodes(ctx, sess, segmentsQuery, "segments",
		map[string]interface{}{"first": first}, &segments)
	return segments, err
}
