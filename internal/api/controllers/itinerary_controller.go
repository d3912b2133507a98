package controllers

import (
	"net/http"
	"travelwise/internal/models/request_models"
	"travelwise/internal/services"
	"travelwise/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// Generate godoc
// @Summary Generate a day-by-day itinerary
// @Description Builds a prompt from the trip, calls the model and parses the answer
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Trip parameters"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /itineraries [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// Parse godoc
// @Summary Parse model output into an itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.ParseItineraryRequest true "Raw model text and trip"
// @Success 200 {object} utils.APIResponse
// @Router /itineraries/parse [post]
func (i *ItineraryController) Parse(c *gin.Context) {
	var req request_models.ParseItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	itinerary, err := i.itineraryService.ParseItinerary(req.Raw, req.Trip)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary parsed successfully")
}

// Prompt returns the prompt that would be sent for a trip, without calling
// the model. ?style= overrides the body and the configured default.
func (i *ItineraryController) Prompt(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	preview, err := i.itineraryService.BuildPrompt(req, c.Query("style"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, preview, "Prompt built successfully")
}

// GenerateText forwards a free-form prompt and returns the raw answer. Failures
// come back as readable text in the payload, not as an error status.
func (i *ItineraryController) GenerateText(c *gin.Context) {
	var req request_models.GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	text := i.itineraryService.GenerateTripPlan(c.Request.Context(), req.Prompt)
	utils.RespondSuccess(c, gin.H{"text": text}, "Text generated")
}
