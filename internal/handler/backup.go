package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/middleware"
	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler snapshots the asset register and assignment ledger to disk
// and restores them. Admin only. Ledger data goes through the service so
// backups capture whichever store backend is configured; the DB handle only
// tracks backup records. Restore replaces the ledger in one transaction so a
// half-applied snapshot can never be observed.
type BackupHandler struct {
	Service   *ledger.Service
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(svc *ledger.Service, db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{Service: svc, DB: db, BackupDir: backupDir}
}

type backupData struct {
	Created     time.Time                `json:"created"`
	Assets      []models.Asset           `json:"assets"`
	Assignments []models.AssetAssignment `json:"assignments"`
}

// CreateBackup writes a JSON snapshot file and records it.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	assets, recs, err := h.Service.Snapshot(c.Request.Context())
	if err != nil {
		ledgerError(c, err)
		return
	}
	data := backupData{
		Created:     time.Now(),
		Assets:      assets,
		Assignments: recs,
	}

	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to serialize snapshot")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create backup dir")
		return
	}

	fileName := fmt.Sprintf("assets-%s-%s.json", time.Now().Format("20060102"), uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write backup file")
		return
	}

	backup := models.Backup{
		CreatedBy: actor.ID,
		FileName:  fileName,
		FilePath:  filePath,
		Size:      int64(len(raw)),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record backup")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists recorded snapshots, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list backups")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_by": b.CreatedBy,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

func (h *BackupHandler) findBackup(c *gin.Context) *models.Backup {
	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backup")
		}
		return nil
	}
	return &backup
}

// DownloadBackup serves the snapshot file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	backup := h.findBackup(c)
	if backup == nil {
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes the file and its record.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	backup := h.findBackup(c)
	if backup == nil {
		return
	}

	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete backup record")
		return
	}

	util.Success(c, util.Response{
		"message": "backup deleted",
	})
}

// RestoreBackup replaces assets and assignments from a snapshot file.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	backup := h.findBackup(c)
	if backup == nil {
		return
	}

	raw, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read backup file")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to parse backup data")
		return
	}

	if err := h.Service.RestoreLedger(c.Request.Context(), data.Assets, data.Assignments); err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":     "restore complete",
		"assets":      len(data.Assets),
		"assignments": len(data.Assignments),
	})
}
