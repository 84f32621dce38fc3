// Package store implements the store customer gateway on the WooCommerce REST API.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const customerPath = "/wc/v3/customers/{id}"

// Client reads customers and writes single profile fields.
// It implements addresssync.StoreCustomerReader and addresssync.StoreProfileWriter.
type Client struct {
	rest   *resty.Client
	logger *zap.Logger
}

// NewClient creates a store client from configuration
func NewClient(cfg config.StoreConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("store")

	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.ConsumerKey, cfg.ConsumerSecret).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	return &Client{rest: rest, logger: logger}
}

// GetCustomer fetches a customer with both addresses
func (c *Client) GetCustomer(ctx context.Context, userID int64) (*addresssync.StoreCustomer, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		Get(customerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", addresssync.ErrStoreRequestFailed, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: user %d", addresssync.ErrCustomerNotFound, userID)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", addresssync.ErrStoreRequestFailed, resp.StatusCode())
	}

	var customer addresssync.StoreCustomer
	if err := json.Unmarshal(resp.Body(), &customer); err != nil {
		return nil, fmt.Errorf("%w: decode customer: %v", addresssync.ErrStoreRequestFailed, err)
	}
	if customer.ID == 0 {
		customer.ID = userID
	}
	return &customer, nil
}

// UpdateUserMeta writes one profile field. Address keys such as
// "billing_city" are sent nested under their classifier; anything else goes
// to meta_data.
func (c *Client) UpdateUserMeta(ctx context.Context, userID int64, key, value string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		SetHeader("Content-Type", "application/json").
		SetBody(metaBody(key, value)).
		Put(customerPath)
	if err != nil {
		return fmt.Errorf("%w: %v", addresssync.ErrStoreRequestFailed, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: user %d", addresssync.ErrCustomerNotFound, userID)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: update %s: status %d", addresssync.ErrStoreRequestFailed, key, resp.StatusCode())
	}

	c.logger.Debug("store profile field updated", zap.Int64("user_id", userID), zap.String("key", key))
	return nil
}

func metaBody(key, value string) map[string]any {
	prefix, field, ok := strings.Cut(key, "_")
	if ok {
		if t, err := addresssync.ParseAddressType(prefix); err == nil && field != "" {
			return map[string]any{
				string(t): map[string]string{field: value},
			}
		}
	}
	return map[string]any{
		"meta_data": []map[string]string{{"key": key, "value": value}},
	}
}

var (
	_ addresssync.StoreCustomerReader = (*Client)(nil)
	_ addresssync.StoreProfileWriter  = (*Client)(nil)
)
