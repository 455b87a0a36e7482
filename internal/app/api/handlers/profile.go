package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/noortales/backend/internal/app/api/middleware"
	profilesvc "github.com/noortales/backend/internal/app/service/profile"
	"github.com/noortales/backend/pkg/response"
	"github.com/noortales/backend/pkg/types"
)

// @Summary      Get profile
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/profile [get]
func ApiGetProfile(svc *profilesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetOrCreate(c.Request.Context(), mw.UserID(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// @Summary      Update profile
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body handlers.updateProfileRequest true "Profile fields"
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/profile [put]
func ApiUpdateProfile(svc *profilesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p, err := svc.UpdateDisplayName(c.Request.Context(), mw.UserID(c), req.DisplayName)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

type awardPointsRequest struct {
	Activity types.PointsActivity `json:"activity" binding:"required"`
}

// @Summary      Award points
// @Description  Credits the fixed award for an activity and returns the updated profile.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body handlers.awardPointsRequest true "Activity"
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/profile/points [post]
func ApiAwardPoints(svc *profilesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req awardPointsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p, err := svc.AwardPoints(c.Request.Context(), mw.UserID(c), req.Activity)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

type toggleFavoriteRequest struct {
	ContentType types.ContentType `json:"content_type" binding:"required"`
	ContentID   string            `json:"content_id" binding:"required"`
}

type toggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

// @Summary      Toggle favorite
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body handlers.toggleFavoriteRequest true "Content reference"
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/favorites/toggle [post]
func ApiToggleFavorite(svc *profilesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req toggleFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		favorited, err := svc.ToggleFavorite(c.Request.Context(), mw.UserID(c), req.ContentType, req.ContentID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toggleFavoriteResponse{Favorited: favorited}))
	}
}

// @Summary      List favorites
// @Tags         Profile
// @Produce      json
// @Param        content_type  query  string  false  "Filter by content type"
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/favorites [get]
func ApiListFavorites(svc *profilesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		favs, err := svc.ListFavorites(c.Request.Context(), mw.UserID(c), types.ContentType(c.Query("content_type")))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(favs))
	}
}

func RegisterProfileRoutes(r gin.IRouter, svc *profilesvc.Service) {
	r.GET("/profile", ApiGetProfile(svc))
	r.PUT("/profile", ApiUpdateProfile(svc))
	r.POST("/profile/points", ApiAwardPoints(svc))
	r.POST("/favorites/toggle", ApiToggleFavorite(svc))
	r.GET("/favorites", ApiListFavorites(svc))
}
