package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/noortales/backend/internal/app/api/middleware"
	contentsvc "github.com/noortales/backend/internal/app/service/content"
	subsvc "github.com/noortales/backend/internal/app/service/subscription"
	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/response"
)

type storyView struct {
	*models.Story
	Locked bool `json:"locked"`
}

// @Summary      List stories
// @Tags         Content
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Param        q         query  string  false  "Substring search over title and excerpt"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/stories [get]
func ApiListStories(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stories, err := svc.ListStories(c.Request.Context(), c.Query("category"), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(stories))
	}
}

// @Summary      Daily story
// @Tags         Content
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/stories/daily [get]
func ApiDailyStory(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		story, err := svc.DailyStory(c.Request.Context(), time.Now())
		if err != nil {
			if errors.Is(err, contentsvc.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "no story published today"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(story))
	}
}

// @Summary      Get story
// @Description  Premium story bodies are withheld unless the caller is entitled.
// @Tags         Content
// @Produce      json
// @Param        id  path  string  true  "Story id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/stories/{id} [get]
func ApiGetStory(svc *contentsvc.Service, subs *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entitled := false
		if userID := mw.UserID(c); userID != "" {
			var err error
			entitled, err = subs.IsEntitled(c.Request.Context(), userID)
			if err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
				return
			}
		}

		story, locked, err := svc.GetStory(c.Request.Context(), c.Param("id"), entitled)
		if err != nil {
			if errors.Is(err, contentsvc.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "story not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(storyView{Story: story, Locked: locked}))
	}
}

// @Summary      List duas
// @Tags         Content
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Param        q         query  string  false  "Substring search"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/duas [get]
func ApiListDuas(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		duas, err := svc.ListDuas(c.Request.Context(), c.Query("category"), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(duas))
	}
}

// @Summary      List hadiths
// @Tags         Content
// @Produce      json
// @Param        topic  query  string  false  "Filter by topic"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/hadiths [get]
func ApiListHadiths(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		hadiths, err := svc.ListHadiths(c.Request.Context(), c.Query("topic"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(hadiths))
	}
}

func RegisterContentRoutes(r gin.IRouter, svc *contentsvc.Service, subs *subsvc.Service) {
	r.GET("/stories", ApiListStories(svc))
	r.GET("/stories/daily", ApiDailyStory(svc))
	r.GET("/stories/:id", ApiGetStory(svc, subs))
	r.GET("/duas", ApiListDuas(svc))
	r.GET("/hadiths", ApiListHadiths(svc))
}
