package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler produces downloadable register reports. Data always comes
// through the ledger service so exports work against either store backend.
type ExportHandler struct {
	Service *ledger.Service
	DB      *gorm.DB
}

func NewExportHandler(svc *ledger.Service, db *gorm.DB) *ExportHandler {
	return &ExportHandler{Service: svc, DB: db}
}

var assetHeader = []string{"Tag Number", "Name", "Category", "Serial Number", "Status", "Assigned To", "Purchase Date", "Purchase Cost", "Created"}

func (h *ExportHandler) assetRow(a *models.Asset, names map[uint]string) []string {
	assignedTo := ""
	if a.AssignedTo != nil {
		assignedTo = names[*a.AssignedTo]
		if assignedTo == "" {
			assignedTo = strconv.FormatUint(uint64(*a.AssignedTo), 10)
		}
	}
	purchaseDate := ""
	if a.PurchaseDate != nil {
		purchaseDate = a.PurchaseDate.Format("2006-01-02")
	}
	purchaseCost := ""
	if a.PurchaseCost != nil {
		purchaseCost = strconv.FormatFloat(*a.PurchaseCost, 'f', 2, 64)
	}
	return []string{
		a.TagNumber,
		a.Name,
		a.Category,
		a.SerialNumber,
		a.Status,
		assignedTo,
		purchaseDate,
		purchaseCost,
		a.CreatedAt.Format("2006-01-02"),
	}
}

// userNames loads id -> display name for the referenced holders.
func (h *ExportHandler) userNames() map[uint]string {
	names := make(map[uint]string)
	var users []models.User
	if err := h.DB.Select("id", "name").Find(&users).Error; err != nil {
		return names
	}
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names
}

// ExportAssetsCSV streams the asset register as CSV.
func (h *ExportHandler) ExportAssetsCSV(c *gin.Context) {
	assets, err := h.Service.ListAssets(c.Request.Context(), ledger.AssetFilter{Status: c.Query("status")})
	if err != nil {
		ledgerError(c, err)
		return
	}
	names := h.userNames()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"assets_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(assetHeader)
	for i := range assets {
		writer.Write(h.assetRow(&assets[i], names))
	}
}

// ExportAssetsXLSX writes the asset register as a spreadsheet.
func (h *ExportHandler) ExportAssetsXLSX(c *gin.Context) {
	assets, err := h.Service.ListAssets(c.Request.Context(), ledger.AssetFilter{Status: c.Query("status")})
	if err != nil {
		ledgerError(c, err)
		return
	}
	names := h.userNames()

	f := excelize.NewFile()
	sheetName := "Asset Register"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, title := range assetHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, title)
	}
	for idx := range assets {
		row := h.assetRow(&assets[idx], names)
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, idx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "E", 18)
	f.SetColWidth(sheetName, "F", "F", 22)
	f.SetColWidth(sheetName, "G", "I", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"assets_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

// ExportAssignmentsCSV streams the assignment ledger as CSV.
func (h *ExportHandler) ExportAssignmentsCSV(c *gin.Context) {
	recs, err := h.Service.ListAssignments(c.Request.Context(), ledger.AssignmentFilter{})
	if err != nil {
		ledgerError(c, err)
		return
	}
	names := h.userNames()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"assignments_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Asset ID", "User", "Assigned By", "Date Assigned", "Date Returned", "Active", "Return Condition", "Notes"})
	for i := range recs {
		r := &recs[i]
		userName := names[r.UserID]
		if userName == "" {
			userName = strconv.FormatUint(uint64(r.UserID), 10)
		}
		assignedBy := names[r.AssignedBy]
		if assignedBy == "" {
			assignedBy = strconv.FormatUint(uint64(r.AssignedBy), 10)
		}
		returned := ""
		if r.DateReturned != nil {
			returned = r.DateReturned.Format("2006-01-02")
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(r.AssetID), 10),
			userName,
			assignedBy,
			r.DateAssigned.Format("2006-01-02"),
			returned,
			strconv.FormatBool(r.Active),
			r.ReturnCondition,
			r.Notes,
		})
	}
}
