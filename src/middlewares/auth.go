package middlewares

import (
	"net/http"
	"os"
	"rbs/src/types"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// RestaurantAuthMiddleware validates the restaurant's bearer token and puts
// the tenant id on the context. Every restaurant route goes through it.
func RestaurantAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &types.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if claims.RestaurantID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no restaurant"})
			return
		}
		ctx.Set("restaurant_id", claims.RestaurantID)
		ctx.Set("account_email", claims.AccountEmail)
		ctx.Next()
	}
}

// GuestMiddleware requires the anonymous client id header the guest app
// sends with every request.
func GuestMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		clientID := ctx.GetHeader("x-client-id")
		if clientID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing x-client-id header"})
			return
		}
		ctx.Set("guest_id", clientID)
		ctx.Next()
	}
}
