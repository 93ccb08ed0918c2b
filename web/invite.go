package web

import (
	"errors"
	"log"
	"net/http"

	"server/auth"
	"server/models"

	"github.com/gin-gonic/gin"
)

// InvitationAcceptView renders the accept form for a pending invitation.
// An unknown token gets a 404 page; an already-accepted one gets an
// explicit notice (the invitee most likely followed a stale email link).
func InvitationAcceptView(c *gin.Context) {
	inv, err := models.InvitationByToken(c.Param("token"))
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("invitation lookup error: %v", err)
		}
		c.HTML(http.StatusNotFound, "invite_missing.tmpl", gin.H{})
		return
	}
	if inv.Accepted() {
		c.HTML(http.StatusGone, "invite_accepted.tmpl", gin.H{
			"company": inv.Company.Name,
		})
		return
	}
	c.HTML(http.StatusOK, "invite_accept.tmpl", gin.H{
		"company": inv.Company.Name,
		"email":   inv.Email,
	})
}

// InvitationAcceptSubmit redeems the token: provisions the account, the
// talent profile and the role grant in one transaction, then signs the
// new user in and sends them to the management landing page.
func InvitationAcceptSubmit(c *gin.Context) {
	token := c.Param("token")
	name := c.PostForm("name")
	password := c.PostForm("password")

	user, err := models.AcceptInvitation(token, name, password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.HTML(http.StatusNotFound, "invite_missing.tmpl", gin.H{})
		case errors.Is(err, models.ErrInviteAccepted):
			c.HTML(http.StatusGone, "invite_accepted.tmpl", gin.H{})
		case errors.Is(err, models.ErrWeakPassword), errors.Is(err, models.ErrEmailTaken):
			status := http.StatusUnprocessableEntity
			if errors.Is(err, models.ErrEmailTaken) {
				status = http.StatusConflict
			}
			inv, lookupErr := models.InvitationByToken(token)
			if lookupErr != nil {
				c.HTML(http.StatusNotFound, "invite_missing.tmpl", gin.H{})
				return
			}
			c.HTML(status, "invite_accept.tmpl", gin.H{
				"company": inv.Company.Name,
				"email":   inv.Email,
				"name":    name,
				"problem": err.Error(),
			})
		default:
			log.Printf("invitation accept error: %v", err)
			c.HTML(http.StatusInternalServerError, "invite_missing.tmpl", gin.H{
				"problem": "Something went wrong, please try again",
			})
		}
		return
	}
	auth.LoadSession(c).LogonUser(&user)
	c.Redirect(http.StatusSeeOther, "/manage/")
}
