package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
	"github.com/festafacil/app-busca-fornecedores/internal/validate"
	"go.uber.org/zap"
)

// NominatimClient faz geocodificação reversa para obter o CEP de coordenadas
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

type nominatimResponse struct {
	Address struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// NewNominatimClient cria um cliente para baseURL (ex.: https://nominatim.openstreetmap.org)
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, log *zap.Logger) *NominatimClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NominatimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.OrNop(log),
	}
}

// CEPFromCoords retorna o CEP formatado (NNNNN-NNN) das coordenadas.
// Retorna false quando o serviço falha ou o postcode tem menos de 8 dígitos.
func (n *NominatimClient) CEPFromCoords(ctx context.Context, lat, lon float64) (string, bool) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("zoom", "18")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Accept-Language", "pt-BR")
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	postcode, err := n.do(req)
	if err != nil {
		observability.GeoLookups.WithLabelValues("nominatim", "error").Inc()
		n.logger.Warn("falha na geocodificação reversa",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return "", false
	}

	cep, ok := validate.FormatCEP(postcode)
	if !ok {
		observability.GeoLookups.WithLabelValues("nominatim", "not_found").Inc()
		return "", false
	}
	observability.GeoLookups.WithLabelValues("nominatim", "found").Inc()
	return cep, true
}

func (n *NominatimClient) do(req *http.Request) (string, error) {
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	return body.Address.Postcode, nil
}
