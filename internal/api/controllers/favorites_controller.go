package controllers

import (
	"net/http"
	"strconv"
	"travelwise/internal/services"
	"travelwise/pkg/middleware"
	"travelwise/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FavoritesController serves /favorites. Every route sits behind the JWT
// middleware, so the account id is always present on the context.
type FavoritesController struct {
	favoritesService services.FavoritesServiceInterface
}

func NewFavoritesController(favoritesService services.FavoritesServiceInterface) *FavoritesController {
	return &FavoritesController{
		favoritesService: favoritesService,
	}
}

func destinationParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("destinationId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid destination id")
		return 0, false
	}
	return id, true
}

func (f *FavoritesController) List(c *gin.Context) {
	favorites, err := f.favoritesService.ListFavorites(c.Request.Context(), c.GetString(middleware.ContextAccountID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, favorites, "Favorites retrieved successfully")
}

func (f *FavoritesController) Add(c *gin.Context) {
	id, ok := destinationParam(c)
	if !ok {
		return
	}
	if err := f.favoritesService.AddFavorite(c.Request.Context(), c.GetString(middleware.ContextAccountID), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"destination_id": id, "is_favorite": true}, "Added to favorites")
}

func (f *FavoritesController) Remove(c *gin.Context) {
	id, ok := destinationParam(c)
	if !ok {
		return
	}
	if err := f.favoritesService.RemoveFavorite(c.Request.Context(), c.GetString(middleware.ContextAccountID), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"destination_id": id, "is_favorite": false}, "Removed from favorites")
}

func (f *FavoritesController) Check(c *gin.Context) {
	id, ok := destinationParam(c)
	if !ok {
		return
	}
	isFavorite, err := f.favoritesService.IsFavorite(c.Request.Context(), c.GetString(middleware.ContextAccountID), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"destination_id": id, "is_favorite": isFavorite}, "")
}
