package handlers

import (
	"net/http"
	"strconv"

	"server/db"
	"server/models"
	"server/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type TalentSaveRequest struct {
	ID        uint64 `form:"id"` // empty means create
	CompanyID uint64 `form:"company_id" binding:"required"`
	Name      string `form:"name" binding:"required"`
	Email     string `form:"email"`
}

func TalentSave(c *gin.Context, user *models.User) {
	postReq := TalentSaveRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !user.HasCompanyRole(postReq.CompanyID, models.RoleAdmin) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	talent := models.Talent{
		ID:        postReq.ID,
		CompanyID: postReq.CompanyID,
		Name:      postReq.Name,
		Email:     utils.NormalizeEmail(postReq.Email),
	}
	if postReq.ID > 0 {
		var current models.Talent
		if err = db.Instance.First(&current, postReq.ID).Error; err != nil || current.CompanyID != postReq.CompanyID {
			c.JSON(http.StatusNotFound, NopeResponse)
			return
		}
		current.Name = talent.Name
		current.Email = talent.Email
		err = db.Instance.Save(&current).Error
	} else {
		err = db.Instance.Create(&talent).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

type TalentInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TalentList(c *gin.Context, user *models.User) {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}
	if !user.HasCompanyRole(companyID, models.RoleAdmin, models.RoleCanInvite, models.RoleMember) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	rows, err := db.Instance.Table("talents").Select("id, name, email").
		Where("company_id = ?", companyID).Order("created_at DESC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []TalentInfo{}
	for rows.Next() {
		info := TalentInfo{}
		if err = rows.Scan(&info.ID, &info.Name, &info.Email); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}
