package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"server/db"
	"server/models"
	"server/storage"
	"server/utils"

	"github.com/gin-gonic/gin"
)

const thumbSize = 640

// HeadshotUpload stores a talent's headshot in the default bucket and
// creates the thumbnail straight away
func HeadshotUpload(c *gin.Context, user *models.User) {
	talentID, err := strconv.ParseUint(c.PostForm("talent_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "talent_id is required"})
		return
	}
	var talent models.Talent
	if err = db.Instance.First(&talent, talentID).Error; err != nil {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	if !user.HasCompanyRole(talent.CompanyID, models.RoleAdmin) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	defaultStorage := storage.GetDefaultStorage()
	if defaultStorage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no storage bucket configured"})
		return
	}
	file, err := c.FormFile("headshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer reader.Close()

	var buf, thumb bytes.Buffer
	if _, err = buf.ReadFrom(reader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	id := strconv.FormatUint(talent.ID, 10)
	headshotPath := storage.StorageLocationHeadshots + "/" + id + ".jpg"
	thumbPath := storage.StorageLocationThumbs + "/" + id + ".jpg"

	thumbInfo, err := utils.CreateThumb(thumbSize, bytes.NewReader(buf.Bytes()), &thumb)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a valid image"})
		return
	}
	size, err := defaultStorage.Save(headshotPath, bytes.NewReader(buf.Bytes()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, err = defaultStorage.Save(thumbPath, &thumb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	bucketID := defaultStorage.GetBucket().ID
	talent.BucketID = &bucketID
	talent.HeadshotPath = headshotPath
	talent.ThumbPath = thumbPath
	talent.ThumbWidth = thumbInfo.NewX
	talent.ThumbHeight = thumbInfo.NewY
	talent.HeadshotSize = size
	talent.ThumbSize = thumbInfo.ThumbSize
	if err = db.Instance.Save(&talent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func HeadshotFetch(c *gin.Context, user *models.User) {
	talentID, err := strconv.ParseUint(c.Query("talent_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "talent_id is required"})
		return
	}
	var talent models.Talent
	if err = db.Instance.Preload("Bucket").First(&talent, talentID).Error; err != nil {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	if !user.HasCompanyRole(talent.CompanyID, models.RoleAdmin, models.RoleCanInvite, models.RoleMember) {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if talent.BucketID == nil || talent.HeadshotPath == "" {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	path := talent.HeadshotPath
	if c.Query("thumb") == "1" && talent.ThumbPath != "" {
		path = talent.ThumbPath
	}
	bucketStorage := storage.StorageFrom(&talent.Bucket)
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.Header("content-type", "image/jpeg")
	bucketStorage.Serve(path, c.Request, c.Writer)
}
