package common

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"rbs/src/db"
	"rbs/src/lib"
	"rbs/src/models"
	"rbs/src/types"
	"rbs/src/utils"
	"time"

	"gorm.io/gorm"
)

const feedbackCacheTTL = 60 * time.Second

func normalizePage(index, size int) (int, int) {
	if index < 1 {
		index = 1
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return index, size
}

func pageMeta(index, size int, total int64) types.PageMeta {
	totalPage := total / int64(size)
	if total%int64(size) != 0 {
		totalPage++
	}
	return types.PageMeta{
		Current:   index,
		PageSize:  size,
		TotalItem: total,
		TotalPage: totalPage,
	}
}

func applyBookRoomFilters(q *gorm.DB, params *types.ListBookRoomQuery) *gorm.DB {
	if params.Status != "" && params.Status != "all" {
		q = q.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		q = q.Where("email LIKE ? OR phone LIKE ? OR guest_name LIKE ?", kw, kw, kw)
	}
	if params.FromDate != "" {
		q = q.Where("created_at >= ?", params.FromDate)
	}
	if params.ToDate != "" {
		q = q.Where("created_at <= ?", params.ToDate+" 23:59:59")
	}
	return q
}

func listBookRooms(scope map[string]any, params *types.ListBookRoomQuery) ([]models.BookRoom, types.PageMeta, error) {
	index, size := normalizePage(params.PageIndex, params.PageSize)

	q := db.GetDb().Model(&models.BookRoom{})
	for col, v := range scope {
		q = q.Where(col+" = ?", v)
	}
	q = applyBookRoomFilters(q, params)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, types.PageMeta{}, utils.Internal("ListBookRooms", component, err)
	}

	var bookings []models.BookRoom
	err := q.
		Order("created_at desc").
		Offset((index - 1) * size).
		Limit(size).
		Preload("Amenities").
		Preload("MenuItems").
		Find(&bookings).
		Error
	if err != nil {
		return nil, types.PageMeta{}, utils.Internal("ListBookRooms", component, err)
	}
	return bookings, pageMeta(index, size, total), nil
}

// ListRestaurantBookRooms pages through a tenant's bookings, newest first.
func ListRestaurantBookRooms(restaurantID string, params *types.ListBookRoomQuery) ([]models.BookRoom, types.PageMeta, error) {
	return listBookRooms(restaurantScope(restaurantID), params)
}

// ListGuestBookRooms pages through the bookings tied to an anonymous client id.
func ListGuestBookRooms(guestID string, params *types.ListBookRoomQuery) ([]models.BookRoom, types.PageMeta, error) {
	return listBookRooms(guestScope(guestID), params)
}

type FeedbackItem struct {
	ID        string `json:"id"`
	GuestName string `json:"guest_name"`
	Star      *int   `json:"star"`
	Feedback  string `json:"feedback"`
	Reply     string `json:"reply"`
}

type feedbackPage struct {
	Items []FeedbackItem `json:"items"`
	Meta  types.PageMeta `json:"meta"`
}

// ListRestaurantFeedback returns the publicly visible feedback of a
// restaurant. Results are cached briefly since this feeds a public page.
func ListRestaurantFeedback(restaurantID string, params *types.ListFeedbackQuery) ([]FeedbackItem, types.PageMeta, error) {
	index, size := normalizePage(params.PageIndex, params.PageSize)
	cacheKey := fmt.Sprintf("feedback:%s:%d:%d:%d", restaurantID, params.Star, index, size)

	rdb := lib.GetRedisClient()
	ctx := context.Background()
	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var page feedbackPage
			if err := json.Unmarshal([]byte(cached), &page); err == nil {
				return page.Items, page.Meta, nil
			}
		}
	}

	q := db.GetDb().
		Model(&models.BookRoom{}).
		Where("restaurant_id = ?", restaurantID).
		Where("feed_view = ?", types.FEED_VIEW_ACTIVE).
		Where("feedback <> ''")
	if params.Star != 0 {
		q = q.Where("star = ?", params.Star)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, types.PageMeta{}, utils.Internal("ListRestaurantFeedback", component, err)
	}

	var items []FeedbackItem
	err := q.
		Select("id", "guest_name", "star", "feedback", "reply").
		Order("updated_at desc").
		Offset((index - 1) * size).
		Limit(size).
		Find(&items).
		Error
	if err != nil {
		return nil, types.PageMeta{}, utils.Internal("ListRestaurantFeedback", component, err)
	}

	meta := pageMeta(index, size, total)
	if rdb != nil {
		page := feedbackPage{Items: items, Meta: meta}
		if raw, err := json.Marshal(page); err == nil {
			if err := rdb.Set(ctx, cacheKey, raw, feedbackCacheTTL).Err(); err != nil {
				log.Printf("[ListRestaurantFeedback] cache write failed: %s\n", err)
			}
		}
	}
	return items, meta, nil
}
