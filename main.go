package main

import (
	"log"
	"strings"
	"time"

	"server/activity"
	"server/auth"
	"server/config"
	"server/db"
	"server/handlers"
	"server/models"
	"server/storage"
	"server/tasks"
	"server/utils"
	"server/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	tasks.Init()
	activity.Init()
	tasks.StartWorkers()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/headshot/fetch"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.GET("/user/status", handlers.UserGetStatus)
	// Invitation handlers (minting; acceptance is on the public web surface)
	authRouter.POST("/invitation/create", handlers.InvitationCreate)  // per-company role check in handler
	authRouter.POST("/invitation/reinvite", handlers.InvitationReInvite)
	// Talent handlers
	authRouter.POST("/talent/save", handlers.TalentSave)
	authRouter.GET("/talent/list", handlers.TalentList)
	authRouter.POST("/headshot/upload", handlers.HeadshotUpload)
	authRouter.GET("/headshot/fetch", handlers.HeadshotFetch)
	// Group handlers
	authRouter.POST("/group/create", handlers.GroupCreate)
	authRouter.POST("/group/add", handlers.GroupAddTalent)
	authRouter.GET("/group/members", handlers.GroupMembers)
	// Shoutout handlers
	authRouter.POST("/shoutout/create", handlers.ShoutoutCreate)
	authRouter.GET("/shoutout/list", handlers.ShoutoutList)
	// Management landing
	authRouter.GET("/manage/", handlers.ManageLanding)

	/*
	 *	Web interface
	 */
	// Invitation acceptance ("/join" is the short link used in emails)
	router.GET("/join/:token", web.InvitationAcceptView)
	router.POST("/join/:token", web.InvitationAcceptSubmit)
	router.GET("/invitations/accept/:token", web.InvitationAcceptView)
	router.POST("/invitations/accept/:token", web.InvitationAcceptSubmit)
	// Misc
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
