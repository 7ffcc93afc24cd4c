// Package orgapi is the HTTP client for the upstream Organisations API,
// which resolves buying organisations and their deliverable sub-units.
package orgapi

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/internal/upstream"
)

// ErrOrganisationNotFound is returned for an unknown organisation.
var ErrOrganisationNotFound = errors.New("organisation not found")

// Organisation is a buying organisation known to the Organisations API.
type Organisation struct {
	ID      string
	Name    string
	OdsCode string
}

// Client calls the Organisations API.
type Client struct {
	c *upstream.Client
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...upstream.Option) (*Client, error) {
	c, err := upstream.New(baseURL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "organisations api")
	}
	return &Client{c: c}, nil
}

// GetOrganisation resolves an organisation by its internal ID.
func (c *Client) GetOrganisation(ctx context.Context, orgID string) (*Organisation, error) {
	var payload struct {
		OrganisationID string `json:"organisationId"`
		Name           string `json:"name"`
		OdsCode        string `json:"odsCode"`
	}
	err := c.c.Get(ctx, "/api/v1/Organisations/"+url.PathEscape(orgID), &payload)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrOrganisationNotFound
		}
		return nil, errors.Wrapf(err, "get organisation %s", orgID)
	}
	return &Organisation{ID: payload.OrganisationID, Name: payload.Name, OdsCode: payload.OdsCode}, nil
}

// ListServiceRecipients fetches the full recipient catalogue of a buying
// organisation. Orders select a subset of these.
func (c *Client) ListServiceRecipients(ctx context.Context, orgID string) ([]order.ServiceRecipient, error) {
	var payload []struct {
		Name    string `json:"name"`
		OdsCode string `json:"odsCode"`
	}
	err := c.c.Get(ctx, "/api/v1/Organisations/"+url.PathEscape(orgID)+"/service-recipients", &payload)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrOrganisationNotFound
		}
		return nil, errors.Wrapf(err, "list service recipients for %s", orgID)
	}

	out := make([]order.ServiceRecipient, 0, len(payload))
	for _, p := range payload {
		out = append(out, order.ServiceRecipient{Name: p.Name, OdsCode: p.OdsCode})
	}
	return out, nil
}
