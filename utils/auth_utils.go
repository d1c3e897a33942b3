package utils

import (
	"github.com/gin-gonic/gin"
)

type AdminClaims struct {
	Wallet string `json:"wallet"`
}

type contextKey string

const AdminContextKey contextKey = "admin"

func GetAdmin(c *gin.Context) *AdminClaims {
	admin, exists := c.Get(string(AdminContextKey))
	if !exists {
		return nil
	}
	if claims, ok := admin.(*AdminClaims); ok {
		return claims
	}
	return nil
}
