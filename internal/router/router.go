package router

import (
	"github.com/Donkoyote123/werk-asset-management-system/internal/config"
	"github.com/Donkoyote123/werk-asset-management-system/internal/handler"
	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/middleware"
	"github.com/Donkoyote123/werk-asset-management-system/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the API. Auth is open; everything else requires a
// valid session, with admin/manager gates on the mutating surfaces.
func SetupRouter(cfg *config.Config, db *gorm.DB, svc *ledger.Service) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	assetHandler := handler.NewAssetHandler(svc, db, cfg.App.PageSize)
	protected.GET("/assets", assetHandler.ListAssets)
	protected.GET("/assets/:id", assetHandler.GetAsset)
	protected.POST("/assets", manage, assetHandler.CreateAsset)
	protected.DELETE("/assets/:id", manage, assetHandler.DeleteAsset)
	protected.PATCH("/assets/:id/status", adminOnly, assetHandler.OverrideStatus)
	protected.GET("/categories", assetHandler.ListCategories)

	assignmentHandler := handler.NewAssignmentHandler(svc)
	protected.GET("/assignments", assignmentHandler.ListAssignments)
	protected.POST("/assignments", manage, assignmentHandler.Assign)
	protected.PUT("/assignments/return", manage, assignmentHandler.Return)

	userHandler := handler.NewUserHandler(db, cfg.Security.BcryptCost, cfg.App.UsernameOrg)
	protected.GET("/users", manage, userHandler.ListUsers)
	protected.POST("/users", adminOnly, userHandler.CreateUser)
	protected.PUT("/users/:id/password", adminOnly, userHandler.ResetPassword)
	protected.DELETE("/users/:id", adminOnly, userHandler.DeactivateUser)

	exportHandler := handler.NewExportHandler(svc, db)
	protected.GET("/export/assets/csv", manage, exportHandler.ExportAssetsCSV)
	protected.GET("/export/assets/xlsx", manage, exportHandler.ExportAssetsXLSX)
	protected.GET("/export/assignments/csv", manage, exportHandler.ExportAssignmentsCSV)

	backupHandler := handler.NewBackupHandler(svc, db, cfg.Backup.Dir)
	protected.POST("/backups", adminOnly, backupHandler.CreateBackup)
	protected.GET("/backups", adminOnly, backupHandler.ListBackups)
	protected.GET("/backups/:id/download", adminOnly, backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", adminOnly, backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", adminOnly, backupHandler.DeleteBackup)

	auditHandler := handler.NewAuditHandler(db, cfg.App.PageSize)
	protected.GET("/logs", adminOnly, auditHandler.ListLogs)

	return r
}
