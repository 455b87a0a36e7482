package handlers

import (
	subsvc "github.com/noortales/backend/internal/app/service/subscription"
	"github.com/noortales/backend/pkg/response"
	types "github.com/noortales/backend/pkg/types"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespSubscriptionInfo wraps the subscription status view in the standard envelope.
type RespSubscriptionInfo struct {
	Code    response.APIResponseCode   `json:"code"`
	Message string                     `json:"message"`
	Data    types.UserSubscriptionInfo `json:"data"`
}

// RespScanSubscriptions wraps the admin subscription listing in the standard envelope.
type RespScanSubscriptions struct {
	Code    response.APIResponseCode         `json:"code"`
	Message string                           `json:"message"`
	Data    subsvc.ScanSubscriptionsResponse `json:"data"`
}
