package handlers

import (
	"net/http"
	"strconv"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GroupCreateRequest struct {
	CompanyID uint64 `form:"company_id" binding:"required"`
	Name      string `form:"name" binding:"required"`
}
type GroupTalentRequest struct {
	GroupID  uint64 `form:"group_id" binding:"required"`
	TalentID uint64 `form:"talent_id" binding:"required"`
}

func GroupCreate(c *gin.Context, user *models.User) {
	postReq := GroupCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !user.HasCompanyRole(postReq.CompanyID, models.RoleAdmin) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	group := models.Group{
		CompanyID:   postReq.CompanyID,
		CreatedByID: user.ID,
		Name:        postReq.Name,
	}
	if err = db.Instance.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": group.ID})
}

func GroupAddTalent(c *gin.Context, user *models.User) {
	postReq := GroupTalentRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var group models.Group
	if err = db.Instance.First(&group, postReq.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	if !user.HasCompanyRole(group.CompanyID, models.RoleAdmin) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	var talent models.Talent
	if err = db.Instance.First(&talent, postReq.TalentID).Error; err != nil || talent.CompanyID != group.CompanyID {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	entry := models.GroupTalent{GroupID: group.ID, TalentID: talent.ID}
	if err = db.Instance.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func GroupMembers(c *gin.Context, user *models.User) {
	groupID, err := strconv.ParseUint(c.Query("group_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_id is required"})
		return
	}
	var group models.Group
	if err = db.Instance.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	if !user.HasCompanyRole(group.CompanyID, models.RoleAdmin, models.RoleCanInvite, models.RoleMember) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	c.JSON(http.StatusOK, models.LoadGroupTalentIDs(group.ID))
}
