package handlers

import (
	"net/http"

	"server/auth"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	TotpCode string `form:"totp_code"`
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, success := models.UserLogin(postReq.Email, postReq.Password)
	if !success || !user.CheckTotp(postReq.TotpCode) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrLoginFailed.Error()})
		return
	}
	session := auth.LoadSession(c)
	session.LogonUser(&user)
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "companies": user.CompanyIDs()})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{
		"error":     "",
		"name":      user.Name,
		"email":     user.Email,
		"last_seen": user.LastSeenAt,
		"companies": user.CompanyIDs(),
	})
}
