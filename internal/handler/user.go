package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler manages staff accounts. Usernames and first passwords are
// generated server-side; the plaintext password is shown exactly once in
// the create/reset response and never stored.
type UserHandler struct {
	DB          *gorm.DB
	BcryptCost  int
	UsernameOrg string
}

func NewUserHandler(db *gorm.DB, bcryptCost int, usernameOrg string) *UserHandler {
	return &UserHandler{DB: db, BcryptCost: bcryptCost, UsernameOrg: usernameOrg}
}

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"username":      u.Username,
		"name":          u.Name,
		"email":         u.Email,
		"id_number":     u.IDNumber,
		"role":          u.Role,
		"mobile_number": u.MobileNumber,
		"is_active":     u.IsActive,
		"created_at":    u.CreatedAt,
	}
}

// ListUsers returns all accounts, never including password hashes.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userResp(&users[i]))
	}
	util.Success(c, util.Response{
		"items": items,
	})
}

type createUserReq struct {
	Name         string `json:"name" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,max=100"`
	IDNumber     string `json:"id_number" binding:"required,max=50"`
	Role         string `json:"role" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"max=20"`
}

// CreateUser registers a staff account with a generated username and a
// one-time temporary password.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, email, id number and role are required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.IDNumber = strings.TrimSpace(req.IDNumber)

	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateRole(req.Role); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ? OR id_number = ?", req.Email, req.IDNumber).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check existing users")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeInvalidParam, "user with this email or ID number already exists")
		return
	}

	username := util.GenerateUsername(req.Name, h.UsernameOrg, func(candidate string) bool {
		var n int64
		h.DB.Model(&models.User{}).Where("username = ?", candidate).Count(&n)
		return n > 0
	})

	plainPassword, err := util.GeneratePassword(12)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate password")
		return
	}
	hash, err := util.HashPassword(plainPassword, h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         req.Role,
		Name:         req.Name,
		Email:        req.Email,
		IDNumber:     req.IDNumber,
		MobileNumber: req.MobileNumber,
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Success(c, util.Response{
		"message": "user created",
		"user":    userResp(&user),
		"credentials": gin.H{
			"username": username,
			"password": plainPassword,
		},
	})
}

// ResetPassword issues a fresh temporary password for the account.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user id")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	plainPassword, err := util.GeneratePassword(12)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate password")
		return
	}
	hash, err := util.HashPassword(plainPassword, h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	if err := h.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update password")
		return
	}

	util.Success(c, util.Response{
		"message":      "password reset",
		"new_password": plainPassword,
	})
}

// DeactivateUser disables login without deleting the account; assignment
// history keeps pointing at it.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user id")
		return
	}

	res := h.DB.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to deactivate user")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	util.Success(c, util.Response{
		"message": "user deactivated",
	})
}
