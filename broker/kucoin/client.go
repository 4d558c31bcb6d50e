package kucoin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/perpbot/broker"
	"github.com/rustyeddy/perpbot/market"
)

// LiveURL is the KuCoin Futures REST endpoint.
const LiveURL = "https://api-futures.kucoin.com"

// Client is a narrow KuCoin Futures REST connector: ticker, klines, account
// overview, and market orders. Request signing is the only authentication
// concern it carries.
type Client struct {
	baseURL    string
	sign       signer
	httpClient *http.Client
}

// NewClient creates a KuCoin Futures client. An empty baseURL selects the
// live endpoint.
func NewClient(apiKey, apiSecret, passphrase, baseURL string) *Client {
	if baseURL == "" {
		baseURL = LiveURL
	}
	return &Client{
		baseURL: baseURL,
		sign:    signer{apiKey: apiKey, apiSecret: apiSecret, passphrase: passphrase},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type apiResponse struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = string(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.sign.headers(method, path, payload) {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if api.Code != "200000" {
		return fmt.Errorf("API error (code %s): %s", api.Code, api.Msg)
	}
	if out != nil {
		if err := json.Unmarshal(api.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// instrumentID maps the unified perpetual symbol ("BTC/USDT:USDT") to the
// exchange's contract identifier ("XBTUSDTM"). KuCoin names Bitcoin XBT.
func instrumentID(symbol string) string {
	base, _, found := strings.Cut(symbol, "/")
	if !found {
		base = symbol
	}
	if base == "BTC" {
		base = "XBT"
	}
	return base + "USDTM"
}

// granularity converts a timeframe such as "5m", "1h", or "1d" to the
// kline granularity in minutes.
func granularity(timeframe string) (int, error) {
	if n, found := strings.CutSuffix(timeframe, "d"); found {
		days, err := strconv.Atoi(n)
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("bad timeframe %q", timeframe)
		}
		return days * 24 * 60, nil
	}

	d, err := time.ParseDuration(timeframe)
	if err != nil {
		return 0, fmt.Errorf("bad timeframe %q: %w", timeframe, err)
	}
	minutes := int(d / time.Minute)
	if minutes <= 0 {
		return 0, fmt.Errorf("timeframe %q is below one minute", timeframe)
	}
	return minutes, nil
}

func (c *Client) FetchTicker(ctx context.Context, symbol string) (market.Ticker, error) {
	var data struct {
		Price string `json:"price"`
		TS    int64  `json:"ts"` // nanoseconds
	}

	path := "/api/v1/ticker?symbol=" + instrumentID(symbol)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return market.Ticker{}, fmt.Errorf("fetch ticker %s: %w", symbol, err)
	}
	if data.Price == "" {
		return market.Ticker{}, fmt.Errorf("fetch ticker %s: no price in response", symbol)
	}

	last, err := strconv.ParseFloat(data.Price, 64)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("fetch ticker %s: parse price: %w", symbol, err)
	}

	return market.Ticker{
		Symbol: symbol,
		Last:   last,
		Time:   time.Unix(0, data.TS),
	}, nil
}

func (c *Client) FetchBalance(ctx context.Context) (broker.Balance, error) {
	var data struct {
		Currency      string  `json:"currency"`
		AccountEquity float64 `json:"accountEquity"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/v1/account-overview?currency=USDT", nil, &data); err != nil {
		return broker.Balance{}, fmt.Errorf("fetch balance: %w", err)
	}

	currency := data.Currency
	if currency == "" {
		currency = "USDT"
	}
	return broker.Balance{Totals: map[string]float64{currency: data.AccountEquity}}, nil
}

func (c *Client) CreateOrder(ctx context.Context, req broker.OrderRequest) (broker.OrderAck, error) {
	body := struct {
		ClientOid  string  `json:"clientOid"`
		Symbol     string  `json:"symbol"`
		Side       string  `json:"side"`
		Type       string  `json:"type"`
		Size       float64 `json:"size"`
		Leverage   string  `json:"leverage,omitempty"`
		MarginMode string  `json:"marginMode,omitempty"`
		ReduceOnly bool    `json:"reduceOnly,omitempty"`
	}{
		ClientOid:  req.ClientOID,
		Symbol:     instrumentID(req.Symbol),
		Side:       string(req.Side),
		Type:       req.Type,
		Size:       req.Amount,
		MarginMode: req.MarginMode,
		ReduceOnly: req.ReduceOnly,
	}
	if body.Type == "" {
		body.Type = "market"
	}
	if req.Leverage > 0 {
		body.Leverage = strconv.FormatFloat(req.Leverage, 'f', -1, 64)
	}

	var data struct {
		OrderID string `json:"orderId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", body, &data); err != nil {
		return broker.OrderAck{}, fmt.Errorf("create order %s %s: %w", req.Side, req.Symbol, err)
	}

	return broker.OrderAck{OrderID: data.OrderID, ClientOID: req.ClientOID}, nil
}

// FetchOHLCV returns completed candles for the symbol starting at since.
// Pagination beyond the exchange's single-response limit is the caller's
// concern.
func (c *Client) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time) ([]market.Candle, error) {
	minutes, err := granularity(timeframe)
	if err != nil {
		return nil, fmt.Errorf("fetch ohlcv %s: %w", symbol, err)
	}

	path := fmt.Sprintf("/api/v1/kline/query?symbol=%s&granularity=%d&from=%d",
		instrumentID(symbol), minutes, since.UnixMilli())

	var rows [][]float64
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch ohlcv %s: %w", symbol, err)
	}

	candles := make([]market.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, market.Candle{
			Time:   time.UnixMilli(int64(row[0])),
			Open:   row[1],
			High:   row[2],
			Low:    row[3],
			Close:  row[4],
			Volume: row[5],
		})
	}
	return candles, nil
}
