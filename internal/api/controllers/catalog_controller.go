package controllers

import (
	"net/http"
	"strconv"
	"travelwise/internal/services"
	"travelwise/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListDestinations godoc
// @Summary List destinations
// @Tags Catalog
// @Produce json
// @Param q query string false "Name or location filter"
// @Success 200 {object} utils.APIResponse
// @Router /catalog/destinations [get]
func (cc *CatalogController) ListDestinations(c *gin.Context) {
	destinations, err := cc.catalogService.ListDestinations(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, destinations, "Destinations retrieved successfully")
}

func (cc *CatalogController) GetDestination(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid destination id")
		return
	}

	destination, err := cc.catalogService.GetDestination(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, destination, "Destination retrieved successfully")
}

func (cc *CatalogController) ListHotels(c *gin.Context) {
	hotels, err := cc.catalogService.ListHotels(c.Request.Context(), c.Query("location"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hotels, "Hotels retrieved successfully")
}

func (cc *CatalogController) ListFlights(c *gin.Context) {
	flights, err := cc.catalogService.ListFlights(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, flights, "Flights retrieved successfully")
}

func (cc *CatalogController) ListCars(c *gin.Context) {
	cars, err := cc.catalogService.ListCars(c.Request.Context(), c.Query("type"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cars, "Cars retrieved successfully")
}

func (cc *CatalogController) ListMeals(c *gin.Context) {
	meals, err := cc.catalogService.ListMeals(c.Request.Context(), c.Query("cuisine"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, meals, "Meals retrieved successfully")
}

func (cc *CatalogController) ListPackages(c *gin.Context) {
	packages, err := cc.catalogService.ListPackages(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, packages, "Packages retrieved successfully")
}
