package handlers

import (
	"net/http"
	"strconv"

	"github.com/festafacil/app-busca-fornecedores/internal/geo"
	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/validate"
	"github.com/gin-gonic/gin"
)

// GeoHandler expõe a consulta de CEP e a geocodificação reversa
type GeoHandler struct {
	viacep    *geo.ViaCEPClient
	nominatim *geo.NominatimClient
}

// NewGeoHandler cria um novo handler de geolocalização
func NewGeoHandler(viacep *geo.ViaCEPClient, nominatim *geo.NominatimClient) *GeoHandler {
	return &GeoHandler{
		viacep:    viacep,
		nominatim: nominatim,
	}
}

// ReverseResponse é o CEP encontrado para as coordenadas
type ReverseResponse struct {
	CEP     string       `json:"cep" example:"04099-123"`
	Address *geo.Address `json:"address,omitempty"`
}

// LookupCEP godoc
// @Summary Consulta endereço pelo CEP
// @Description Consulta o ViaCEP. Aceita CEP com ou sem hífen.
// @Tags geo
// @Produce json
// @Param cep path string true "CEP" example("01001-000")
// @Success 200 {object} geo.Address
// @Failure 400 {object} map[string]string "CEP inválido"
// @Failure 404 {object} map[string]string "CEP não encontrado"
// @Router /api/v1/cep/{cep} [get]
func (h *GeoHandler) LookupCEP(c *gin.Context) {
	cep := c.Param("cep")
	if !validate.IsValidCEP(cep) {
		respondError(c, models.ErrInvalidCEP)
		return
	}

	addr, ok := h.viacep.Lookup(c.Request.Context(), cep)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "CEP não encontrado"})
		return
	}
	c.JSON(http.StatusOK, addr)
}

// Reverse godoc
// @Summary Descobre o CEP a partir de coordenadas
// @Description Geocodificação reversa via Nominatim; o endereço vem do ViaCEP quando disponível.
// @Tags geo
// @Produce json
// @Param lat query number true "Latitude" example(-23.5617)
// @Param lon query number true "Longitude" example(-46.6560)
// @Success 200 {object} ReverseResponse
// @Failure 400 {object} map[string]string "Coordenadas inválidas"
// @Failure 404 {object} map[string]string "CEP não encontrado"
// @Router /api/v1/geo/reverse [get]
func (h *GeoHandler) Reverse(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordenadas inválidas", "details": "lat entre -90 e 90, lon entre -180 e 180"})
		return
	}

	cep, ok := h.nominatim.CEPFromCoords(c.Request.Context(), lat, lon)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "CEP não encontrado para as coordenadas"})
		return
	}

	response := ReverseResponse{CEP: cep}
	if addr, found := h.viacep.Lookup(c.Request.Context(), cep); found {
		response.Address = addr
	}
	c.JSON(http.StatusOK, response)
}
