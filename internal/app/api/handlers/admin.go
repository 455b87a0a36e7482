package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contentsvc "github.com/noortales/backend/internal/app/service/content"
	subsvc "github.com/noortales/backend/internal/app/service/subscription"
	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/response"
)

// @Summary      List subscriptions (admin)
// @Description  Filtered, paginated subscription listing for support tooling.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body subscription.ScanSubscriptionsRequest true "Filters and pagination"
// @Success      200  {object}  handlers.RespScanSubscriptions
// @Security     BearerAuth
// @Router       /api/v1/admin/billing/subscriptions [post]
func ApiAdminListSubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.ScanSubscriptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ScanSubscriptions(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Upsert story (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/admin/stories [post]
func ApiAdminUpsertStory(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var story models.Story
		if err := c.ShouldBindJSON(&story); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := svc.UpsertStory(c.Request.Context(), &story); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(story))
	}
}

// @Summary      Upsert dua (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/admin/duas [post]
func ApiAdminUpsertDua(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dua models.Dua
		if err := c.ShouldBindJSON(&dua); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := svc.UpsertDua(c.Request.Context(), &dua); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(dua))
	}
}

// @Summary      Upsert hadith (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/admin/hadiths [post]
func ApiAdminUpsertHadith(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hadith models.Hadith
		if err := c.ShouldBindJSON(&hadith); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := svc.UpsertHadith(c.Request.Context(), &hadith); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(hadith))
	}
}

func RegisterAdminRoutes(r gin.IRouter, subs *subsvc.Service, content *contentsvc.Service) {
	r.POST("/billing/subscriptions", ApiAdminListSubscriptions(subs))
	r.POST("/stories", ApiAdminUpsertStory(content))
	r.POST("/duas", ApiAdminUpsertDua(content))
	r.POST("/hadiths", ApiAdminUpsertHadith(content))
}
