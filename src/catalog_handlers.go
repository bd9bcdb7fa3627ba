package main

import (
	"net/http"
	"rbs/src/db"
	"rbs/src/models"
	"rbs/src/types"
	"rbs/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Minimal catalog surface: enough for a tenant to manage what the booking
// flow snapshots from.
func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/amenities", func(ctx *gin.Context) {
			var amenities []models.Amenity
			err := db.GetDb().
				Where("restaurant_id = ?", ctx.GetString("restaurant_id")).
				Order("created_at desc").
				Find(&amenities).
				Error
			if err != nil {
				utils.AbortWithError(ctx, utils.Internal("ListAmenities", "CatalogService", err))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": amenities, "count": len(amenities)})
		}).
		POST("/amenities", func(ctx *gin.Context) {
			var body types.CreateAmenityRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			amenity := models.Amenity{
				ID:           uuid.NewString(),
				RestaurantID: ctx.GetString("restaurant_id"),
				Name:         body.Name,
				Price:        body.Price,
				Note:         body.Note,
				Description:  body.Description,
				Status:       types.CATALOG_ENABLED,
			}
			if err := db.GetDb().Create(&amenity).Error; err != nil {
				utils.AbortWithError(ctx, utils.Internal("CreateAmenity", "CatalogService", err))
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": amenity})
		}).
		PUT("/amenities/:id/status", func(ctx *gin.Context) {
			updateCatalogStatus(ctx, &models.Amenity{})
		}).
		GET("/menu-items", func(ctx *gin.Context) {
			var items []models.MenuItem
			err := db.GetDb().
				Where("restaurant_id = ?", ctx.GetString("restaurant_id")).
				Preload("Category").
				Order("created_at desc").
				Find(&items).
				Error
			if err != nil {
				utils.AbortWithError(ctx, utils.Internal("ListMenuItems", "CatalogService", err))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		POST("/menu-items", func(ctx *gin.Context) {
			var body types.CreateMenuItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			item := models.MenuItem{
				ID:           uuid.NewString(),
				RestaurantID: ctx.GetString("restaurant_id"),
				Name:         body.Name,
				Price:        body.Price,
				Image:        body.Image,
				Note:         body.Note,
				Description:  body.Description,
				Status:       types.CATALOG_ENABLED,
			}
			if body.CategoryID != "" {
				item.CategoryID = &body.CategoryID
			}
			if err := db.GetDb().Create(&item).Error; err != nil {
				utils.AbortWithError(ctx, utils.Internal("CreateMenuItem", "CatalogService", err))
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": item})
		}).
		PUT("/menu-items/:id/status", func(ctx *gin.Context) {
			updateCatalogStatus(ctx, &models.MenuItem{})
		}).
		GET("/rooms", func(ctx *gin.Context) {
			var rooms []models.Room
			err := db.GetDb().
				Where("restaurant_id = ?", ctx.GetString("restaurant_id")).
				Order("created_at desc").
				Find(&rooms).
				Error
			if err != nil {
				utils.AbortWithError(ctx, utils.Internal("ListRooms", "CatalogService", err))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			room := models.Room{
				ID:           uuid.NewString(),
				RestaurantID: ctx.GetString("restaurant_id"),
				Name:         body.Name,
				Seats:        body.Seats,
				BasePrice:    body.BasePrice,
				DepositPrice: body.DepositPrice,
				Description:  body.Description,
				Status:       types.CATALOG_ENABLED,
			}
			if err := db.GetDb().Create(&room).Error; err != nil {
				utils.AbortWithError(ctx, utils.Internal("CreateRoom", "CatalogService", err))
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		PUT("/rooms/:id/status", func(ctx *gin.Context) {
			updateCatalogStatus(ctx, &models.Room{})
		})
	return g
}

func updateCatalogStatus(ctx *gin.Context, model any) {
	var params types.BookRoomIDParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var body types.UpdateCatalogStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := db.GetDb().
		Model(model).
		Where("id = ?", params.ID).
		Where("restaurant_id = ?", ctx.GetString("restaurant_id")).
		Update("status", types.CatalogStatus(body.Status))
	if res.Error != nil {
		utils.AbortWithError(ctx, utils.Internal("UpdateCatalogStatus", "CatalogService", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.AbortWithError(ctx, utils.NotFound("catalog item does not exist or has been removed"))
		return
	}
	ctx.Status(http.StatusNoContent)
}
