package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `{"ok":true,"tokens":[
	{"symbol":"WIF","name":"dogwifhat","chain":"sol","priceUsd":0.0015,"change24hPct":12.5},
	{"symbol":"BONK","name":"Bonk","chain":"sol","priceUsd":0.00002,"change24hPct":-3.1}
]}`

// resetQuoteCache limpia la caché compartida entre tests
func resetQuoteCache() {
	quoteCacheMutex.Lock()
	quoteCache = make(map[string]cachedQuote)
	quoteCacheMutex.Unlock()
}

// newFeedServer levanta un feed de prueba que se puede apagar a voluntad
func newFeedServer(t *testing.T, healthy *atomic.Bool, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if healthy != nil && !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, feedBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetTokenQuotesFromFeed(t *testing.T) {
	resetQuoteCache()
	srv := newFeedServer(t, nil, nil)
	t.Setenv("QUOTE_API_URL", srv.URL)

	// Los símbolos se normalizan a mayúsculas
	quotes, err := GetTokenQuotes([]string{"wif"})
	require.NoError(t, err)
	require.Contains(t, quotes, "WIF")
	assert.InDelta(t, 0.0015, quotes["WIF"].PriceUsd, 1e-12)
	assert.InDelta(t, 12.5, quotes["WIF"].Change24hPct, 1e-9)
	assert.NotContains(t, quotes, "BONK")

	// Símbolo que el feed no conoce
	_, err = GetTokenQuotes([]string{"GHOST"})
	assert.Error(t, err)

	_, err = GetTokenQuotes(nil)
	assert.Error(t, err)
}

func TestGetTokenQuoteUsesCache(t *testing.T) {
	resetQuoteCache()
	var calls atomic.Int32
	srv := newFeedServer(t, nil, &calls)
	t.Setenv("QUOTE_API_URL", srv.URL)

	first, err := GetTokenQuote("WIF")
	require.NoError(t, err)
	assert.InDelta(t, 0.0015, first.PriceUsd, 1e-12)
	require.Equal(t, int32(1), calls.Load())

	// Cotización reciente: la segunda consulta no vuelve al feed
	second, err := GetTokenQuote("wif")
	require.NoError(t, err)
	assert.InDelta(t, first.PriceUsd, second.PriceUsd, 1e-12)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetTokenQuoteStaleFallback(t *testing.T) {
	resetQuoteCache()
	var healthy atomic.Bool
	healthy.Store(true)
	srv := newFeedServer(t, &healthy, nil)
	t.Setenv("QUOTE_API_URL", srv.URL)

	first, err := GetTokenQuote("WIF")
	require.NoError(t, err)

	// Envejecer la entrada por encima de la ventana de frescura y apagar
	// el feed: se sigue respondiendo con la última cotización conocida
	quoteCacheMutex.Lock()
	stale := quoteCache["WIF"]
	stale.Timestamp = time.Now().Add(-10 * time.Minute)
	quoteCache["WIF"] = stale
	quoteCacheMutex.Unlock()
	healthy.Store(false)

	quote, err := GetTokenQuote("WIF")
	require.NoError(t, err)
	assert.InDelta(t, first.PriceUsd, quote.PriceUsd, 1e-12)

	// Sin caché previa y sin feed, el error sí llega al llamador
	resetQuoteCache()
	_, err = GetTokenQuote("WIF")
	assert.Error(t, err)
}

func TestGetTokenQuotesDegradesToLastKnown(t *testing.T) {
	resetQuoteCache()
	var healthy atomic.Bool
	healthy.Store(true)
	srv := newFeedServer(t, &healthy, nil)
	t.Setenv("QUOTE_API_URL", srv.URL)

	_, err := GetTokenQuotes([]string{"WIF", "BONK"})
	require.NoError(t, err)

	healthy.Store(false)
	quotes, err := GetTokenQuotes([]string{"WIF", "BONK"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0015, quotes["WIF"].PriceUsd, 1e-12)
	assert.InDelta(t, 0.00002, quotes["BONK"].PriceUsd, 1e-12)
}
