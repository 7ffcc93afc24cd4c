// Package bcapi is the HTTP client for the upstream Buying-Catalogue API:
// the published catalogue of solutions, additional services, and their
// price listings.
package bcapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/internal/upstream"
)

// ErrCatalogueItemNotFound is returned for an unknown catalogue item.
var ErrCatalogueItemNotFound = errors.New("catalogue item not found")

// CatalogueItem is one purchasable entry in the catalogue.
type CatalogueItem struct {
	ID   string
	Name string
	Type order.CatalogueItemType
}

// Unit names a pricing unit, e.g. "patient" / "per patient".
type Unit struct {
	Name        string
	Description string
}

// Tier is one band of a tiered price listing. A nil End means the band is
// open-ended.
type Tier struct {
	Start int
	End   *int
	Price decimal.Decimal
}

// Price is one price listing of a catalogue item, either flat or tiered.
type Price struct {
	ID               int
	Type             string // "Flat" or "Tiered"
	ProvisioningType order.ProvisioningType
	CurrencyCode     string
	Price            decimal.NullDecimal // flat listings only
	ItemUnit         Unit
	TimeUnit         *Unit
	Tiers            []Tier
	TieringPeriod    string
}

// Client calls the Buying-Catalogue API.
type Client struct {
	c *upstream.Client
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...upstream.Option) (*Client, error) {
	c, err := upstream.New(baseURL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "buying-catalogue api")
	}
	return &Client{c: c}, nil
}

type cataloguePayload struct {
	CatalogueItemID   string `json:"catalogueItemId"`
	Name              string `json:"name"`
	CatalogueItemType string `json:"catalogueItemType"`
}

func (p cataloguePayload) toDomain() CatalogueItem {
	return CatalogueItem{
		ID:   p.CatalogueItemID,
		Name: p.Name,
		Type: order.CatalogueItemType(p.CatalogueItemType),
	}
}

// ListSolutions fetches the published solutions available to order.
func (c *Client) ListSolutions(ctx context.Context) ([]CatalogueItem, error) {
	var payload struct {
		Items []cataloguePayload `json:"catalogueItems"`
	}
	err := c.c.Get(ctx, "/api/v1/catalogue-items?catalogueItemType=Solution&publishedStatus=Published", &payload)
	if err != nil {
		return nil, errors.Wrap(err, "list solutions")
	}

	out := make([]CatalogueItem, 0, len(payload.Items))
	for _, p := range payload.Items {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// ListAdditionalServices fetches the additional services attached to the
// given solutions, typically the solutions already on the order.
func (c *Client) ListAdditionalServices(ctx context.Context, solutionIDs []string) ([]CatalogueItem, error) {
	path := "/api/v1/additional-services?solutionIds=" + url.QueryEscape(strings.Join(solutionIDs, ","))

	var payload struct {
		AdditionalServices []cataloguePayload `json:"additionalServices"`
	}
	if err := c.c.Get(ctx, path, &payload); err != nil {
		return nil, errors.Wrap(err, "list additional services")
	}

	out := make([]CatalogueItem, 0, len(payload.AdditionalServices))
	for _, p := range payload.AdditionalServices {
		out = append(out, p.toDomain())
	}
	return out, nil
}

type pricePayload struct {
	PriceID          int                 `json:"priceId"`
	Type             string              `json:"type"`
	ProvisioningType string              `json:"provisioningType"`
	CurrencyCode     string              `json:"currencyCode"`
	Price            decimal.NullDecimal `json:"price"`
	ItemUnit         struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		TierName    string `json:"tierName"`
	} `json:"itemUnit"`
	TimeUnit *struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"timeUnit"`
	Tiers []struct {
		Start int                 `json:"start"`
		End   *int                `json:"end"`
		Price decimal.NullDecimal `json:"price"`
	} `json:"tiers"`
	TieringPeriod string `json:"tieringPeriod"`
}

// ListPrices fetches the price listings of one catalogue item, flat and
// tiered. Tiers keep their listed order: ascending, contiguous bands with
// an open-ended final band.
func (c *Client) ListPrices(ctx context.Context, catalogueItemID string) ([]Price, error) {
	var payload struct {
		Prices []pricePayload `json:"prices"`
	}
	err := c.c.Get(ctx, "/api/v1/catalogue-items/"+url.PathEscape(catalogueItemID)+"/prices", &payload)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrCatalogueItemNotFound
		}
		return nil, errors.Wrapf(err, "list prices for %s", catalogueItemID)
	}

	out := make([]Price, 0, len(payload.Prices))
	for _, p := range payload.Prices {
		price := Price{
			ID:               p.PriceID,
			Type:             p.Type,
			ProvisioningType: order.ProvisioningType(p.ProvisioningType),
			CurrencyCode:     p.CurrencyCode,
			Price:            p.Price,
			ItemUnit:         Unit{Name: p.ItemUnit.Name, Description: p.ItemUnit.Description},
			TieringPeriod:    p.TieringPeriod,
		}
		if p.TimeUnit != nil {
			price.TimeUnit = &Unit{Name: p.TimeUnit.Name, Description: p.TimeUnit.Description}
		}
		for _, t := range p.Tiers {
			price.Tiers = append(price.Tiers, Tier{Start: t.Start, End: t.End, Price: t.Price.Decimal})
		}
		out = append(out, price)
	}
	return out, nil
}
