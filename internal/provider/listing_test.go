package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"testing"

	"pump-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonClient(t *testing.T, wantPath string, status int, body string) *http.Client {
	t.Helper()
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != wantPath {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewReader([]byte(body))),
				Header:     make(http.Header),
			}, nil
		}),
	}
}

func TestBittrexListActivePairs(t *testing.T) {
	t.Parallel()

	p := NewBittrexProvider(testTracer, "btc")
	p.baseURL = "http://example/api/v1.1/public"
	p.client = jsonClient(t, "/api/v1.1/public/getmarkets", http.StatusOK, `{
		"success": true, "message": "",
		"result": [
			{"MarketCurrency": "LTC", "BaseCurrency": "BTC", "MarketCurrencyLong": "Litecoin", "MarketName": "BTC-LTC", "IsActive": true},
			{"MarketCurrency": "DOGE", "BaseCurrency": "BTC", "MarketCurrencyLong": "Dogecoin", "MarketName": "BTC-DOGE", "IsActive": false},
			{"MarketCurrency": "ETH", "BaseCurrency": "USDT", "MarketCurrencyLong": "Ethereum", "MarketName": "USDT-ETH", "IsActive": true},
			{"MarketCurrency": "ark", "BaseCurrency": "BTC", "MarketCurrencyLong": "", "MarketName": "BTC-ARK", "IsActive": true}
		]}`)

	pairs, err := p.ListActivePairs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.MarketPair{{Ticker: "LTC", Name: "Litecoin"}, {Ticker: "ARK", Name: "ARK"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %+v, got %+v", want, pairs)
	}
	if p.Exchange() != "bittrex" {
		t.Fatalf("unexpected exchange %s", p.Exchange())
	}
}

func TestBittrexUnsuccessfulResponse(t *testing.T) {
	t.Parallel()

	p := NewBittrexProvider(testTracer, "BTC")
	p.baseURL = "http://example"
	p.client = jsonClient(t, "/getmarkets", http.StatusOK, `{"success": false, "message": "APIKEY_INVALID", "result": null}`)

	if _, err := p.ListActivePairs(context.Background()); err == nil {
		t.Fatal("expected error for unsuccessful response")
	}
}

func TestYobitListActivePairs(t *testing.T) {
	t.Parallel()

	p := NewYobitProvider(testTracer, "BTC")
	p.baseURL = "http://example/api/3"
	p.client = jsonClient(t, "/api/3/info", http.StatusOK, `{
		"server_time": 1518000000,
		"pairs": {
			"lkc_btc": {"hidden": 0},
			"ltc_btc": {"hidden": 0},
			"ltc_eth": {"hidden": 0},
			"old_btc": {"hidden": 1}
		}}`)

	pairs, err := p.ListActivePairs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.MarketPair{{Ticker: "LKC", Name: "LKC"}, {Ticker: "LTC", Name: "LTC"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %+v, got %+v", want, pairs)
	}
}

func TestBinanceListActivePairs(t *testing.T) {
	t.Parallel()

	p := NewBinanceProvider(testTracer, "BTC")
	p.baseURL = "http://example/api/v3"
	p.client = jsonClient(t, "/api/v3/exchangeInfo", http.StatusOK, `{
		"symbols": [
			{"symbol": "LTCBTC", "status": "TRADING", "baseAsset": "LTC", "quoteAsset": "BTC"},
			{"symbol": "XVGBTC", "status": "BREAK", "baseAsset": "XVG", "quoteAsset": "BTC"},
			{"symbol": "LTCUSDT", "status": "TRADING", "baseAsset": "LTC", "quoteAsset": "USDT"}
		]}`)

	pairs, err := p.ListActivePairs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(pairs, []domain.MarketPair{{Ticker: "LTC", Name: "LTC"}}) {
		t.Fatalf("unexpected pairs %+v", pairs)
	}
}

func TestListingErrorsPropagate(t *testing.T) {
	t.Parallel()

	p := NewBinanceProvider(testTracer, "BTC")
	p.baseURL = "http://example"
	p.client = jsonClient(t, "/exchangeInfo", http.StatusBadGateway, "upstream down")

	pairs, err := p.ListActivePairs(context.Background())
	if err == nil || pairs != nil {
		t.Fatalf("expected error and no pairs, got %v %+v", err, pairs)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadGateway {
		t.Fatalf("expected wrapped StatusError, got %v", err)
	}

	y := NewYobitProvider(testTracer, "BTC")
	y.baseURL = "http://example"
	y.client = jsonClient(t, "/info", http.StatusOK, "not json")
	if _, err := y.ListActivePairs(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
