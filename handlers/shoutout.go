package handlers

import (
	"net/http"
	"strconv"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ShoutoutCreateRequest struct {
	CompanyID uint64 `form:"company_id" binding:"required"`
	Title     string `form:"title" binding:"required"`
	Body      string `form:"body"`
}

func ShoutoutCreate(c *gin.Context, user *models.User) {
	postReq := ShoutoutCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !user.HasCompanyRole(postReq.CompanyID, models.RoleAdmin, models.RoleCanInvite) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	shoutout := models.Shoutout{
		CompanyID:   postReq.CompanyID,
		CreatedByID: user.ID,
		Title:       postReq.Title,
		Body:        postReq.Body,
	}
	if err = db.Instance.Create(&shoutout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": shoutout.ID})
}

type ShoutoutInfo struct {
	ID        uint64 `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

func ShoutoutList(c *gin.Context, user *models.User) {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}
	if !user.HasCompanyRole(companyID, models.RoleAdmin, models.RoleCanInvite, models.RoleMember) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	rows, err := db.Instance.Table("shoutouts").Select("id, created_at, title, body").
		Where("company_id = ?", companyID).Order("created_at DESC").Limit(50).Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []ShoutoutInfo{}
	for rows.Next() {
		info := ShoutoutInfo{}
		if err = rows.Scan(&info.ID, &info.CreatedAt, &info.Title, &info.Body); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}
