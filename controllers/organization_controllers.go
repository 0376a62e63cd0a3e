package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hendrawanp/passvault-app/models"
	"github.com/hendrawanp/passvault-app/services"
	"github.com/hendrawanp/passvault-app/utils"
	"gorm.io/gorm"
)

// OrganizationController manages organizations and their memberships. The
// membership rows it writes are the organization half of every principal the
// listing engine sees.
type OrganizationController struct {
	DB *gorm.DB
}

func NewOrganizationController(db *gorm.DB) *OrganizationController {
	return &OrganizationController{DB: db}
}

// CreateOrganization
func (oc *OrganizationController) CreateOrganization(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	org := models.Organization{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Enabled: true,
	}
	if err := oc.DB.Create(&org).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Organization created: %s (%s)", org.Name, org.ID)
	utils.RespondJSON(c, http.StatusCreated, "Organization created", org)
}

// GetAllOrganizations
func (oc *OrganizationController) GetAllOrganizations(c *gin.Context) {
	var orgs []models.Organization
	if err := oc.DB.Find(&orgs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All organizations", orgs)
}

// AddMember enrolls a user into an organization.
// POST /api/organizations/:org_id/members
func (oc *OrganizationController) AddMember(c *gin.Context) {
	orgID := c.Param("org_id")

	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Role == "" {
		req.Role = "member"
	}

	var org models.Organization
	if err := oc.DB.First(&org, "id = ?", orgID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("organization not found"))
		return
	}
	var user models.User
	if err := oc.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	var existing int64
	oc.DB.Model(&models.OrganizationUser{}).
		Where("organization_id = ? AND user_id = ?", orgID, req.UserID).
		Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("user is already a member"))
		return
	}

	member := models.OrganizationUser{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		UserID:         req.UserID,
		Role:           req.Role,
	}
	if err := oc.DB.Create(&member).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.RecordEvent(oc.DB, models.EventOrganizationUserAdded, req.UserID, nil)
	utils.RespondJSON(c, http.StatusCreated, "Member added", member)
}

// RemoveMember
// DELETE /api/organizations/:org_id/members/:user_id
func (oc *OrganizationController) RemoveMember(c *gin.Context) {
	orgID := c.Param("org_id")
	userID := c.Param("user_id")

	result := oc.DB.Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.OrganizationUser{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("membership not found"))
		return
	}

	services.RecordEvent(oc.DB, models.EventOrganizationUserRemoved, userID, nil)
	utils.RespondJSON(c, http.StatusOK, "Member removed", gin.H{
		"organization_id": orgID,
		"user_id":         userID,
	})
}

// ListMembers
// GET /api/organizations/:org_id/members
func (oc *OrganizationController) ListMembers(c *gin.Context) {
	orgID := c.Param("org_id")

	var members []models.OrganizationUser
	if err := oc.DB.Preload("User").
		Where("organization_id = ?", orgID).
		Find(&members).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Organization members", members)
}
