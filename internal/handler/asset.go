package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AssetHandler exposes the asset side of the ledger. All writes go through
// the ledger service; the DB handle is only used to resolve holder names
// and categories for display.
type AssetHandler struct {
	Service  *ledger.Service
	DB       *gorm.DB
	PageSize int
}

func NewAssetHandler(svc *ledger.Service, db *gorm.DB, pageSize int) *AssetHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &AssetHandler{Service: svc, DB: db, PageSize: pageSize}
}

type assetResp struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	SerialNumber   string     `json:"serial_number"`
	TagNumber      string     `json:"tag_number"`
	Status         string     `json:"status"`
	AssignedTo     *uint      `json:"assigned_to"`
	AssignedToName string     `json:"assigned_to_name,omitempty"`
	AssignedDate   *time.Time `json:"assigned_date"`
	ReturnDate     *time.Time `json:"return_date"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	PurchaseCost   *float64   `json:"purchase_cost"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toAssetResp(a *models.Asset, names map[uint]string) assetResp {
	r := assetResp{
		ID:           a.ID,
		Name:         a.Name,
		Category:     a.Category,
		SerialNumber: a.SerialNumber,
		TagNumber:    a.TagNumber,
		Status:       a.Status,
		AssignedTo:   a.AssignedTo,
		AssignedDate: a.AssignedDate,
		ReturnDate:   a.ReturnDate,
		PurchaseDate: a.PurchaseDate,
		PurchaseCost: a.PurchaseCost,
		Description:  a.Description,
		CreatedAt:    a.CreatedAt,
	}
	if a.AssignedTo != nil {
		r.AssignedToName = names[*a.AssignedTo]
	}
	return r
}

// holderNames resolves user ids to display names in one query.
func (h *AssetHandler) holderNames(assets []models.Asset) map[uint]string {
	ids := make([]uint, 0, len(assets))
	for i := range assets {
		if assets[i].AssignedTo != nil {
			ids = append(ids, *assets[i].AssignedTo)
		}
	}
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	var users []models.User
	if err := h.DB.Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return names
	}
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names
}

// ListAssets returns the asset register, newest first, with optional
// status/category/search filters and paging.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	filter := ledger.AssetFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	assets, err := h.Service.ListAssets(c.Request.Context(), filter)
	if err != nil {
		ledgerError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}

	total := len(assets)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	pageAssets := assets[start:end]

	names := h.holderNames(pageAssets)
	items := make([]assetResp, 0, len(pageAssets))
	for i := range pageAssets {
		items = append(items, toAssetResp(&pageAssets[i], names))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// GetAsset returns one asset together with its full assignment history.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid asset id")
		return
	}

	asset, err := h.Service.GetAsset(c.Request.Context(), uint(id))
	if err != nil {
		ledgerError(c, err)
		return
	}

	history, err := h.Service.ListAssignments(c.Request.Context(), ledger.AssignmentFilter{AssetID: asset.ID})
	if err != nil {
		ledgerError(c, err)
		return
	}

	names := h.holderNames([]models.Asset{*asset})
	util.Success(c, util.Response{
		"asset":   toAssetResp(asset, names),
		"history": history,
	})
}

type createAssetReq struct {
	Name         string   `json:"name" binding:"required,max=200"`
	Category     string   `json:"category" binding:"required,max=100"`
	SerialNumber string   `json:"serial_number" binding:"required,max=100"`
	Description  string   `json:"description" binding:"max=2000"`
	PurchaseDate string   `json:"purchase_date"`
	PurchaseCost *float64 `json:"purchase_cost"`
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req createAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, category and serial number are required")
		return
	}

	if err := util.ValidateSerialNumber(req.SerialNumber); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if req.PurchaseCost != nil && *req.PurchaseCost < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "purchase cost cannot be negative")
		return
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != "" {
		if err := util.ValidateDate(req.PurchaseDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "purchase date must be YYYY-MM-DD")
			return
		}
		t, _ := time.Parse("2006-01-02", req.PurchaseDate)
		purchaseDate = &t
	}

	asset, err := h.Service.CreateAsset(c.Request.Context(), ledger.CreateAssetInput{
		Name:         req.Name,
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		PurchaseDate: purchaseDate,
		PurchaseCost: req.PurchaseCost,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "asset created",
		"asset":   toAssetResp(asset, nil),
	})
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid asset id")
		return
	}

	if err := h.Service.DeleteAsset(c.Request.Context(), uint(id)); err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "asset deleted",
	})
}

type overrideStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// OverrideStatus parks an asset in maintenance/retired or releases it back
// to available. Admin only; assignment state is never touched here.
func (h *AssetHandler) OverrideStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid asset id")
		return
	}

	var req overrideStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status is required")
		return
	}

	if err := h.Service.OverrideStatus(c.Request.Context(), uint(id), req.Status); err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "status updated",
	})
}

// ListCategories returns the category registry for asset forms.
func (h *AssetHandler) ListCategories(c *gin.Context) {
	var categories []models.AssetCategory
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list categories")
		return
	}
	util.Success(c, util.Response{
		"items": categories,
	})
}
