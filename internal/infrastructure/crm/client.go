// Package crm implements the CRM address gateway on the CiviCRM APIv3 REST endpoint.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	entityAddress  = "Address"
	actionGet      = "getsingle"
	actionCreate   = "create"
	userAgent      = "addresssync/1.0"
	maxErrorLength = 256
)

// Client calls the CRM REST endpoint. It implements addresssync.CRMAddressGateway.
type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
	siteKey  string
	logger   *zap.Logger
}

// NewClient creates a CRM client from configuration
func NewClient(cfg config.CRMConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("crm")

	http := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	return &Client{
		http:     http,
		endpoint: cfg.BaseURL,
		apiKey:   cfg.APIKey,
		siteKey:  cfg.SiteKey,
		logger:   logger,
	}
}

// GetAddress fetches the single address of a contact for a location type.
// API errors are reported on the returned address, transport errors as error.
func (c *Client) GetAddress(ctx context.Context, contactID, locationTypeID int64) (*addresssync.CRMAddress, error) {
	params := addresssync.BaseParams(contactID, locationTypeID)
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: encode params: %v", addresssync.ErrCRMRequestFailed, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(c.query(actionGet, payload)).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", addresssync.ErrCRMRequestFailed, err)
	}

	record, err := c.decode(resp)
	if err != nil {
		return nil, err
	}
	return addresssync.NewCRMAddressFromRecord(record), nil
}

// SaveAddress creates the address, or updates it when params carry an id
func (c *Client) SaveAddress(ctx context.Context, params addresssync.AddressRecord) (*addresssync.CRMAddress, error) {
	withSequential := params.Merge(addresssync.AddressRecord{"sequential": "1"})
	payload, err := json.Marshal(withSequential)
	if err != nil {
		return nil, fmt.Errorf("%w: encode params: %v", addresssync.ErrCRMRequestFailed, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(c.query(actionCreate, payload)).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", addresssync.ErrCRMRequestFailed, err)
	}

	record, err := c.decode(resp)
	if err != nil {
		return nil, err
	}
	if record["is_error"] != "" && record["is_error"] != "0" {
		return addresssync.NewCRMAddressFromRecord(record), nil
	}

	saved := params.Merge(firstValue(record))
	if id, ok := record["id"]; ok && id != "" {
		saved["id"] = id
	}
	c.logger.Debug("crm address saved",
		zap.String("id", saved["id"]),
		zap.String("contact_id", saved[string(addresssync.CRMFieldContactID)]),
	)
	return addresssync.NewCRMAddressFromRecord(saved), nil
}

func (c *Client) query(action string, payload []byte) map[string]string {
	return map[string]string{
		"entity":  entityAddress,
		"action":  action,
		"json":    string(payload),
		"api_key": c.apiKey,
		"key":     c.siteKey,
	}
}

// decode flattens a CRM response into string fields. The "values" member is
// kept raw under the same key for create responses.
func (c *Client) decode(resp *resty.Response) (addresssync.AddressRecord, error) {
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", addresssync.ErrCRMRequestFailed,
			resp.StatusCode(), truncate(resp.String()))
	}

	raw := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", addresssync.ErrCRMRequestFailed, err)
	}

	record := make(addresssync.AddressRecord, len(raw))
	for k, v := range raw {
		if k == "values" {
			if b, err := json.Marshal(v); err == nil {
				record[k] = string(b)
			}
			continue
		}
		if s, ok := scalarString(v); ok {
			record[k] = s
		}
	}
	return record, nil
}

// firstValue extracts the first entity from a create response's values
func firstValue(record addresssync.AddressRecord) addresssync.AddressRecord {
	values, ok := record["values"]
	if !ok {
		return nil
	}

	var list []map[string]any
	if err := json.Unmarshal([]byte(values), &list); err != nil || len(list) == 0 {
		var keyed map[string]map[string]any
		if err := json.Unmarshal([]byte(values), &keyed); err != nil {
			return nil
		}
		for _, v := range keyed {
			list = append(list, v)
			break
		}
	}
	if len(list) == 0 {
		return nil
	}

	out := make(addresssync.AddressRecord, len(list[0]))
	for k, v := range list[0] {
		if s, ok := scalarString(v); ok {
			out[k] = s
		}
	}
	return out
}

// scalarString renders a JSON scalar the way the CRM would as a string
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		if val {
			return "1", true
		}
		return "0", true
	default:
		return "", false
	}
}

func truncate(s string) string {
	if len(s) <= maxErrorLength {
		return s
	}
	return s[:maxErrorLength] + "..."
}

var _ addresssync.CRMAddressGateway = (*Client)(nil)
