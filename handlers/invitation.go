package handlers

import (
	"log"
	"net/http"

	"server/db"
	"server/mailer"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InvitationCreateRequest struct {
	Email     string `form:"email" binding:"required"`
	CompanyID uint64 `form:"company_id" binding:"required"`
	Role      uint8  `form:"role"`
}
type InvitationReInviteRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

// InvitationCreate mints a new invitation token for the company and emails
// the accept link. The raw token is also returned so it can be shared by
// other means.
func InvitationCreate(c *gin.Context, user *models.User) {
	postReq := InvitationCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !user.HasCompanyRole(postReq.CompanyID, models.RoleAdmin, models.RoleCanInvite) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	company, err := models.CompanyByID(postReq.CompanyID)
	if err != nil {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	inv, err := models.NewInvitation(user, company.ID, postReq.Email, models.Role(postReq.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err = mailer.SendInvitation(&inv, company.Name); err != nil {
		// The invitation still exists and the link can be re-sent
		log.Printf("Invitation email error: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "token": inv.Token})
}

// InvitationReInvite re-sends the accept link for a still-pending invitation
func InvitationReInvite(c *gin.Context, user *models.User) {
	postReq := InvitationReInviteRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var inv models.Invitation
	if err = db.Instance.Preload("Company").First(&inv, postReq.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	if !user.HasCompanyRole(inv.CompanyID, models.RoleAdmin, models.RoleCanInvite) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if inv.Accepted() {
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrInviteAccepted.Error()})
		return
	}
	if err = mailer.SendInvitation(&inv, inv.Company.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
