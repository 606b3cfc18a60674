package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/shopspring/decimal"

	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

// ErrUnauthorized is returned when the API rejects the JWT token
var ErrUnauthorized = errors.New("intents API rejected the JWT token")

// ErrRequestRejected is returned for other 4xx answers to non-quote calls
var ErrRequestRejected = errors.New("intents API rejected the request")

// ErrTokenNotFound is returned when no supported asset matches a wallet
var ErrTokenNotFound = errors.New("token not supported by intents API")

// OneClickClient wraps the 1Click SDK
type OneClickClient struct {
	client   *oneclick.APIClient
	jwtToken string
}

// NewOneClickClient creates a new 1Click API client. An empty baseURL keeps
// the SDK default server.
func NewOneClickClient(jwtToken, baseURL string) *OneClickClient {
	config := oneclick.NewConfiguration()
	if baseURL != "" {
		config.Servers = oneclick.ServerConfigurations{{URL: strings.TrimRight(baseURL, "/")}}
	}

	return &OneClickClient{
		client:   oneclick.NewAPIClient(config),
		jwtToken: jwtToken,
	}
}

// authed attaches the JWT to the request context
func (c *OneClickClient) authed(ctx context.Context) context.Context {
	return context.WithValue(ctx, oneclick.ContextAccessToken, c.jwtToken)
}

// GetSupportedTokens retrieves all supported tokens
func (c *OneClickClient) GetSupportedTokens(ctx context.Context) ([]oneclick.TokenResponse, error) {
	resp, httpResp, err := c.client.OneClickAPI.GetTokens(c.authed(ctx)).Execute()
	if err != nil {
		if httpResp != nil {
			defer httpResp.Body.Close()
			return nil, apiError(httpResp, err, ErrRequestRejected)
		}
		return nil, fmt.Errorf("failed to get tokens: %v: %w", err, send.ErrNetworkUnavailable)
	}
	defer httpResp.Body.Close()

	return resp, nil
}

// FindTokenOnChain searches for a token by symbol on a specific chain
func (c *OneClickClient) FindTokenOnChain(ctx context.Context, symbol, chain string) (*oneclick.TokenResponse, error) {
	tokens, err := c.GetSupportedTokens(ctx)
	if err != nil {
		return nil, err
	}

	token, ok := MatchToken(tokens, symbol, chain)
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", strings.ToUpper(symbol), strings.ToLower(chain), ErrTokenNotFound)
	}
	return token, nil
}

// MatchToken finds the asset with symbol on chain, both compared
// case-insensitively
func MatchToken(tokens []oneclick.TokenResponse, symbol, chain string) (*oneclick.TokenResponse, bool) {
	for i := range tokens {
		if strings.EqualFold(tokens[i].GetSymbol(), symbol) &&
			strings.EqualFold(tokens[i].GetBlockchain(), chain) {
			return &tokens[i], true
		}
	}
	return nil, false
}

// TransferQuote is a dry quote for moving an asset to a recipient
type TransferQuote struct {
	AmountIn     decimal.Decimal
	AmountOut    decimal.Decimal
	TimeEstimate float64
}

// Fee is what the route keeps between deposit and delivery
func (q TransferQuote) Fee() decimal.Decimal {
	return q.AmountIn.Sub(q.AmountOut)
}

// GetTransferQuote asks for a dry quote sending amount of token to recipient.
// Source and destination asset are the same, so the difference between amount
// in and amount out is the route fee.
func (c *OneClickClient) GetTransferQuote(ctx context.Context, token *oneclick.TokenResponse, amount types.Amount, recipient, refundTo types.Address) (*TransferQuote, error) {
	smallestUnit := amount.Shift(int32(token.GetDecimals())).Truncate(0)
	if !smallestUnit.IsPositive() {
		return nil, fmt.Errorf("amount below smallest unit: %w", send.ErrInvalidAmount)
	}

	deadline := time.Now().Add(10 * time.Minute)

	quoteReq := oneclick.NewQuoteRequest(
		true,                  // dry - no deposit address needed for a fee estimate
		"EXACT_INPUT",         // swapType
		100,                   // slippageTolerance (1%)
		token.GetAssetId(),    // originAsset
		"ORIGIN_CHAIN",        // depositType
		token.GetAssetId(),    // destinationAsset
		smallestUnit.String(), // amount in smallest unit
		refundTo.String(),     // refundTo
		"ORIGIN_CHAIN",        // refundType
		recipient.String(),    // recipient
		"DESTINATION_CHAIN",   // recipientType
		deadline,              // deadline
	)

	resp, httpResp, err := c.client.OneClickAPI.GetQuote(c.authed(ctx)).QuoteRequest(*quoteReq).Execute()
	if err != nil {
		if httpResp != nil {
			defer httpResp.Body.Close()
			return nil, apiError(httpResp, err, send.ErrInvalidAmount)
		}
		return nil, fmt.Errorf("failed to get quote from API: %v: %w", err, send.ErrNetworkUnavailable)
	}
	defer httpResp.Body.Close()

	if resp == nil {
		return nil, fmt.Errorf("empty quote response")
	}

	quote := resp.GetQuote()
	in, err := decimal.NewFromString(quote.GetAmountInFormatted())
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount in: %w", err)
	}
	out, err := decimal.NewFromString(quote.GetAmountOutFormatted())
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount out: %w", err)
	}

	return &TransferQuote{
		AmountIn:     in,
		AmountOut:    out,
		TimeEstimate: float64(quote.GetTimeEstimate()),
	}, nil
}

// apiError extracts the message of a failed API call. The SDK returns an
// error for every non-2xx answer. 5xx and 429 mean the service is unavailable,
// 401 and 403 a bad token; any other 4xx is wrapped in rejected.
func apiError(httpResp *http.Response, err error, rejected error) error {
	sentinel := rejected
	switch {
	case httpResp.StatusCode >= 500, httpResp.StatusCode == http.StatusTooManyRequests:
		sentinel = send.ErrNetworkUnavailable
	case httpResp.StatusCode == http.StatusUnauthorized, httpResp.StatusCode == http.StatusForbidden:
		sentinel = ErrUnauthorized
	}

	bodyBytes, readErr := io.ReadAll(httpResp.Body)
	if readErr == nil && len(bodyBytes) > 0 {
		var errorResp map[string]interface{}
		if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
			if message, ok := errorResp["message"].(string); ok {
				return fmt.Errorf("API error (status %d): %s: %w", httpResp.StatusCode, message, sentinel)
			}
		}
		return fmt.Errorf("API error (status %d): %s: %w", httpResp.StatusCode, strings.TrimSpace(string(bodyBytes)), sentinel)
	}
	return fmt.Errorf("API error (status %d): %v: %w", httpResp.StatusCode, err, sentinel)
}
