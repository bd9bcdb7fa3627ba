package main

import (
	"net/http"
	"rbs/src/common"
	"rbs/src/models"
	"rbs/src/types"
	"rbs/src/utils"

	"github.com/gin-gonic/gin"
)

func bindBookRoomID(ctx *gin.Context) (string, bool) {
	var params types.BookRoomIDParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return params.ID, true
}

func respondBooking(ctx *gin.Context, booking *models.BookRoom, err error) {
	if err != nil {
		utils.AbortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": booking})
}

func restaurantTransition(apply func(id, restaurantID string) (*models.BookRoom, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := bindBookRoomID(ctx)
		if !ok {
			return
		}
		booking, err := apply(id, ctx.GetString("restaurant_id"))
		respondBooking(ctx, booking, err)
	}
}

func restaurantBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/book-rooms", func(ctx *gin.Context) {
			var query types.ListBookRoomQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, meta, err := common.ListRestaurantBookRooms(ctx.GetString("restaurant_id"), &query)
			if err != nil {
				utils.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "meta": meta})
		}).
		GET("/book-rooms/:id", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			booking, err := common.GetBookRoom(id, ctx.GetString("restaurant_id"))
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/confirm-deposit", restaurantTransition(common.RestaurantConfirmDepositBookRoom)).
		PUT("/book-rooms/:id/confirm", restaurantTransition(common.RestaurantConfirmBookRoom)).
		PUT("/book-rooms/:id/cancel", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.CancelBookRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.RestaurantCancelBookRoom(id, ctx.GetString("restaurant_id"), body.Reason)
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/check-in", restaurantTransition(common.RestaurantCheckInBookRoom)).
		PUT("/book-rooms/:id/in-use", restaurantTransition(common.RestaurantInUseBookRoom)).
		PUT("/book-rooms/:id/no-show", restaurantTransition(common.RestaurantNoShowBookRoom)).
		PUT("/book-rooms/:id/check-out", restaurantTransition(common.RestaurantCheckOutBookRoom)).
		PUT("/book-rooms/:id/check-out-overtime", restaurantTransition(common.RestaurantCheckOutOvertimeBookRoom)).
		PUT("/book-rooms/:id/confirm-payment", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.ConfirmPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.RestaurantConfirmPaymentBookRoom(id, ctx.GetString("restaurant_id"), body.PlusPrice)
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/refund-deposit", restaurantTransition(common.RestaurantRefundDepositBookRoom)).
		PUT("/book-rooms/:id/refund-one-third", restaurantTransition(common.RestaurantRefundOneThirdBookRoom)).
		PUT("/book-rooms/:id/refund-one-two", restaurantTransition(common.RestaurantRefundOneTwoBookRoom)).
		PUT("/book-rooms/:id/no-deposit", restaurantTransition(common.RestaurantNoDepositBookRoom)).
		PUT("/book-rooms/:id/guest-exception", restaurantTransition(common.GuestExceptionBookRoom)).
		PUT("/book-rooms/:id/exception", restaurantTransition(common.RestaurantExceptionBookRoom)).
		PUT("/book-rooms/:id/done-complaint", restaurantTransition(common.DoneComplaintBookRoom)).
		PUT("/book-rooms/:id/feedback-reply", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.FeedbackReplyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.RestaurantFeedbackBookRoom(id, ctx.GetString("restaurant_id"), body.Reply)
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/note", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.RestaurantNoteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.UpdateRestaurantNote(id, ctx.GetString("restaurant_id"), body.NoteRes)
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/feed-view", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.FeedViewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.UpdateFeedViewBookRoom(id, ctx.GetString("restaurant_id"), types.FeedView(body.FeedView))
			respondBooking(ctx, booking, err)
		}).
		POST("/book-rooms/:id/menu-items", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.AddMenuItemsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.AddMenuItemsToBookRoom(id, ctx.GetString("restaurant_id"), body.MenuItems)
			respondBooking(ctx, booking, err)
		}).
		POST("/book-rooms/:id/amenities", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.AddAmenitiesRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.AddAmenitiesToBookRoom(id, ctx.GetString("restaurant_id"), body.Amenities)
			respondBooking(ctx, booking, err)
		})
	return g
}

func guestBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/book-rooms", func(ctx *gin.Context) {
			var body types.CreateBookRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.CreateBookRoom(ctx.GetString("guest_id"), &body)
			if err != nil {
				utils.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/book-rooms", func(ctx *gin.Context) {
			var query types.ListBookRoomQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, meta, err := common.ListGuestBookRooms(ctx.GetString("guest_id"), &query)
			if err != nil {
				utils.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "meta": meta})
		}).
		PUT("/book-rooms/:id/cancel", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.CancelBookRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.GuestCancelBookRoom(id, ctx.GetString("guest_id"), body.Reason)
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/complaint", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			booking, err := common.GuestComplaintBookRoom(id, ctx.GetString("guest_id"))
			respondBooking(ctx, booking, err)
		}).
		PUT("/book-rooms/:id/feedback", func(ctx *gin.Context) {
			id, ok := bindBookRoomID(ctx)
			if !ok {
				return
			}
			var body types.GuestFeedbackRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.GuestFeedbackBookRoom(id, ctx.GetString("guest_id"), body.Star, body.Feedback)
			respondBooking(ctx, booking, err)
		})
	return g
}

func publicBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		// Reached from the link in the confirmation email.
		PUT("/book-rooms/confirm", func(ctx *gin.Context) {
			var query types.ConfirmBookRoomQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.GuestConfirmBookRoom(query.BkrID, query.RestaurantID)
			respondBooking(ctx, booking, err)
		}).
		GET("/restaurants/:id/feedback", func(ctx *gin.Context) {
			restaurantID := ctx.Params.ByName("id")
			var query types.ListFeedbackQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			items, meta, err := common.ListRestaurantFeedback(restaurantID, &query)
			if err != nil {
				utils.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "meta": meta})
		})
	return g
}
