package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/noortales/backend/internal/app/api/middleware"
	billsvc "github.com/noortales/backend/internal/app/service/billing"
	"github.com/noortales/backend/pkg/response"
	"github.com/noortales/backend/pkg/types"
)

type checkoutRequest struct {
	PlanType types.PlanType `json:"plan_type" binding:"required"`
}

type checkoutResponse struct {
	SessionID string `json:"session_id"`
}

// @Summary      Start checkout
// @Description  Creates a Stripe checkout session for the selected plan.
// @Tags         Billing
// @Accept       json
// @Produce      json
// @Param        request body handlers.checkoutRequest true "Plan selection"
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/billing/checkout [post]
func ApiStartCheckout(svc *billsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		sessionID, err := svc.StartCheckout(c.Request.Context(), mw.UserID(c), mw.UserEmail(c), req.PlanType)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(checkoutResponse{SessionID: sessionID}))
	}
}

type portalResponse struct {
	URL string `json:"url"`
}

// @Summary      Open billing portal
// @Description  Creates a Stripe billing portal session for plan self-service.
// @Tags         Billing
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Security     BearerAuth
// @Router       /api/v1/billing/portal [post]
func ApiOpenPortal(svc *billsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := svc.OpenPortal(c.Request.Context(), mw.UserID(c))
		if err != nil {
			if errors.Is(err, billsvc.ErrNoSubscription) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(portalResponse{URL: url}))
	}
}

// @Summary      Subscription status
// @Description  Returns the caller's subscription and premium entitlement.
// @Tags         Billing
// @Produce      json
// @Success      200  {object}  handlers.RespSubscriptionInfo
// @Security     BearerAuth
// @Router       /api/v1/billing/subscription [get]
func ApiSubscriptionStatus(svc *billsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := svc.GetStatus(c.Request.Context(), mw.UserID(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(info))
	}
}

func RegisterBillingRoutes(r gin.IRouter, svc *billsvc.Service) {
	r.POST("/checkout", ApiStartCheckout(svc))
	r.POST("/portal", ApiOpenPortal(svc))
	r.GET("/subscription", ApiSubscriptionStatus(svc))
}
