package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

const defaultQuoteAPIBase = "https://api.memecoinradar.online"

// Caché para almacenar cotizaciones y reducir llamadas a la API
var (
	quoteCacheMutex sync.Mutex
	quoteCache      = make(map[string]cachedQuote)
)

// La API pública de cotizaciones limita las peticiones, así que las
// espaciamos desde el cliente
var quoteLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 2)

type cachedQuote struct {
	Quote     models.TokenQuote
	Timestamp time.Time
}

// feedToken es la forma de cada token en la respuesta del feed
type feedToken struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Chain        string  `json:"chain"`
	PriceUsd     float64 `json:"priceUsd"`
	Change24hPct float64 `json:"change24hPct"`
}

type feedResponse struct {
	Ok     bool        `json:"ok"`
	Tokens []feedToken `json:"tokens"`
}

func quoteAPIBase() string {
	if base := os.Getenv("QUOTE_API_URL"); base != "" {
		return base
	}
	return defaultQuoteAPIBase
}

// FetchTokenFeed obtiene el feed completo de tokens con sus cotizaciones
func FetchTokenFeed() ([]feedToken, error) {
	if err := quoteLimiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/tokens", quoteAPIBase())
	if apiKey := os.Getenv("QUOTE_API_KEY"); apiKey != "" {
		url = fmt.Sprintf("%s?api_key=%s", url, apiKey)
	}

	resp, err := http.Get(url)
	if err != nil {
		log.Printf("Error haciendo la petición HTTP al feed de tokens: %v", err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("el feed de tokens respondió %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error leyendo el cuerpo de la respuesta del feed: %v", err)
		return nil, fmt.Errorf("error leyendo respuesta: %v", err)
	}

	var result feedResponse
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("Error decodificando JSON del feed: %v", err)
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}

	if !result.Ok {
		return nil, fmt.Errorf("el feed de tokens devolvió ok=false")
	}

	return result.Tokens, nil
}

// GetTokenQuotes obtiene las cotizaciones actuales de múltiples símbolos en
// una sola llamada. Si la red falla pero hay cotizaciones en caché, devuelve
// las últimas conocidas: el resto del sistema sigue operando con precios
// posiblemente viejos en lugar de fallar.
func GetTokenQuotes(symbols []string) (map[string]models.TokenQuote, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no se proporcionaron símbolos")
	}

	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[strings.ToUpper(s)] = true
	}

	feed, err := FetchTokenFeed()
	if err != nil {
		cached := lastKnownQuotes(wanted)
		if len(cached) > 0 {
			log.Printf("Feed de cotizaciones no disponible, usando últimas conocidas: %v", err)
			return cached, nil
		}
		return nil, err
	}

	now := time.Now()
	quotes := make(map[string]models.TokenQuote)
	quoteCacheMutex.Lock()
	for _, t := range feed {
		symbol := strings.ToUpper(t.Symbol)
		quote := models.TokenQuote{
			PriceUsd:     t.PriceUsd,
			Change24hPct: t.Change24hPct,
			LastUpdated:  now,
		}
		quoteCache[symbol] = cachedQuote{Quote: quote, Timestamp: now}
		if wanted[symbol] {
			quotes[symbol] = quote
		}
	}
	quoteCacheMutex.Unlock()

	if len(quotes) == 0 {
		return nil, fmt.Errorf("no se encontraron cotizaciones para los símbolos proporcionados")
	}

	return quotes, nil
}

// GetTokenQuote obtiene la cotización de un solo símbolo, usando la caché
// si es reciente (menos de 5 minutos)
func GetTokenQuote(symbol string) (*models.TokenQuote, error) {
	symbol = strings.ToUpper(symbol)

	quoteCacheMutex.Lock()
	cached, exists := quoteCache[symbol]
	quoteCacheMutex.Unlock()
	if exists && time.Since(cached.Timestamp) < 5*time.Minute {
		quote := cached.Quote
		return &quote, nil
	}

	quotes, err := GetTokenQuotes([]string{symbol})
	if err != nil {
		// Degradación: con caché vieja seguimos respondiendo
		if exists {
			quote := cached.Quote
			return &quote, nil
		}
		return nil, err
	}

	quote, found := quotes[symbol]
	if !found {
		if exists {
			stale := cached.Quote
			return &stale, nil
		}
		return nil, fmt.Errorf("no se encontraron datos para %s", symbol)
	}
	return &quote, nil
}

func lastKnownQuotes(wanted map[string]bool) map[string]models.TokenQuote {
	quoteCacheMutex.Lock()
	defer quoteCacheMutex.Unlock()

	quotes := make(map[string]models.TokenQuote)
	for symbol, cached := range quoteCache {
		if wanted[symbol] {
			quotes[symbol] = cached.Quote
		}
	}
	return quotes
}
