package handler

import (
	"net/http"
	"strconv"

	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/middleware"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler exposes the assignment ledger: hand out, take back,
// browse history.
type AssignmentHandler struct {
	Service *ledger.Service
}

func NewAssignmentHandler(svc *ledger.Service) *AssignmentHandler {
	return &AssignmentHandler{Service: svc}
}

type assignReq struct {
	AssetID uint   `json:"asset_id" binding:"required"`
	UserID  uint   `json:"user_id" binding:"required"`
	Notes   string `json:"notes" binding:"max=2000"`
}

// Assign hands an available asset to a user. The acting account becomes
// the assignment's assigned-by.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "asset id and user id are required")
		return
	}

	rec, err := h.Service.AssignAsset(c.Request.Context(), ledger.AssignAssetInput{
		AssetID:    req.AssetID,
		UserID:     req.UserID,
		AssignedBy: actor.ID,
		Notes:      req.Notes,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":    "asset assigned",
		"assignment": rec,
	})
}

type returnReq struct {
	AssetID         uint   `json:"asset_id" binding:"required"`
	ReturnCondition string `json:"return_condition" binding:"max=255"`
	Notes           string `json:"notes" binding:"max=2000"`
}

// Return takes an assigned asset back and closes its active ledger row.
func (h *AssignmentHandler) Return(c *gin.Context) {
	var req returnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "asset id is required")
		return
	}

	err := h.Service.ReturnAsset(c.Request.Context(), ledger.ReturnAssetInput{
		AssetID:         req.AssetID,
		ReturnCondition: req.ReturnCondition,
		Notes:           req.Notes,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "asset returned",
	})
}

// ListAssignments browses the ledger, filterable by asset, user and
// active-only.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var f ledger.AssignmentFilter
	if v, err := strconv.Atoi(c.Query("asset_id")); err == nil && v > 0 {
		f.AssetID = uint(v)
	}
	if v, err := strconv.Atoi(c.Query("user_id")); err == nil && v > 0 {
		f.UserID = uint(v)
	}
	f.ActiveOnly = c.Query("active") == "true"

	recs, err := h.Service.ListAssignments(c.Request.Context(), f)
	if err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"items": recs,
		"total": len(recs),
	})
}
