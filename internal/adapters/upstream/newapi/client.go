package newapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/ports"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout = 5 * time.Second

	userSelfPath     = "/api/user/self"
	subscriptionPath = "/v1/dashboard/billing/subscription"
	usagePath        = "/v1/dashboard/billing/usage"

	userHeader       = "New-Api-User"
	userAgent        = "balanceline"
	maxResponseBytes = 1 << 20
)

// Client queries a new-api compatible gateway. Every request is bounded by
// the client timeout so a hung gateway cannot stall the prompt.
type Client struct {
	httpClient *http.Client
}

var _ ports.UpstreamClient = (*Client)(nil)

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// FetchAccountQuota reads the account-level quota with the user access
// token. The quota model has no unlimited sentinel.
func (c *Client) FetchAccountQuota(ctx context.Context, identity domain.AccountIdentity, cfg domain.AccountConfig) (domain.BalanceData, error) {
	if !cfg.QuotaEnabled() {
		return domain.BalanceData{}, fmt.Errorf("%w: account quota access token or user id missing", domain.ErrNotConfigured)
	}
	cfg = cfg.WithDefaults()

	var payload userSelfResponse
	err := c.getJSON(ctx, identity.BaseURL+userSelfPath, map[string]string{
		"Authorization": "Bearer " + cfg.AccessToken,
		userHeader:      strconv.FormatInt(cfg.UserID, 10),
	}, &payload)
	if err != nil {
		return domain.BalanceData{}, fmt.Errorf("fetch account quota: %w", err)
	}

	if !payload.Success {
		message := strings.TrimSpace(payload.Message)
		if message == "" {
			message = "success flag false or missing"
		}
		return domain.BalanceData{}, fmt.Errorf("fetch account quota: %w: %s", domain.ErrUpstreamRejected, message)
	}
	if payload.Data == nil {
		return domain.BalanceData{}, fmt.Errorf("fetch account quota: %w", domain.ErrMissingPayload)
	}

	return domain.BalanceFromQuota(domain.AccountQuota{
		Remaining: payload.Data.Quota,
		Used:      payload.Data.UsedQuota,
	}, cfg.QuotaPerUnit, cfg.ExchangeRate), nil
}

// FetchBilling reads the subscription hard limit and the cumulative usage
// concurrently. Both are required.
func (c *Client) FetchBilling(ctx context.Context, identity domain.AccountIdentity) (domain.BalanceData, error) {
	headers := map[string]string{"Authorization": "Bearer " + identity.APIKey}

	var subscription subscriptionResponse
	var usage usageResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.getJSON(gctx, identity.BaseURL+subscriptionPath, headers, &subscription); err != nil {
			return fmt.Errorf("fetch billing subscription: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.getJSON(gctx, identity.BaseURL+usagePath, headers, &usage); err != nil {
			return fmt.Errorf("fetch billing usage: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.BalanceData{}, err
	}

	return domain.BalanceFromBilling(domain.BillingSnapshot{
		HardLimit:  subscription.HardLimitUSD,
		UsageMinor: usage.TotalUsage,
	}), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", domain.ErrTransport, err)
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: perform request: %w", domain.ErrTransport, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrTransport, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamRejected, response.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("%w: status %d: %s", domain.ErrTransport, response.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode payload: %w", domain.ErrParse, err)
	}

	return nil
}
