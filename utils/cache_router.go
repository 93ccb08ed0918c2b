package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
)

type CacheRouter struct {
	CacheTime int // in seconds
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	value := "no-cache"
	if cr.CacheTime > 0 {
		value = "private, max-age=" + strconv.Itoa(cr.CacheTime)
	}
	return func(c *gin.Context) {
		c.Header("cache-control", value)
		c.Next()
	}
}
