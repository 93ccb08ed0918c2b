package handlers

import (
	"net/http"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
)

// ManageLanding is the management view a freshly provisioned account is
// redirected to after accepting an invitation
func ManageLanding(c *gin.Context, user *models.User) {
	companies := []models.Company{}
	ids := user.CompanyIDs()
	if len(ids) > 0 {
		db.Instance.Where("id IN ?", ids).Find(&companies)
	}
	c.HTML(http.StatusOK, "manage.tmpl", gin.H{
		"name":      user.Name,
		"companies": companies,
	})
}
