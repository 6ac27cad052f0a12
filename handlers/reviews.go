package handlers

import (
	"net/http"

	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/filters"
	"business-directory-api/middleware"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListReviews filters by business and rating, highest rating first.
func ListReviews(c *gin.Context) {
	q := filters.New().
		ExactInt("business_id", "business", c.Query("business")).
		ExactInt("rating", "rating", c.Query("rating")).
		OrderBy("rating desc").
		OrderBy("id")
	if !filtersOK(c, q) {
		return
	}
	reviews := []models.Review{}
	if err := q.Apply(config.DB.Preload("Business").Preload("User")).Find(&reviews).Error; err != nil {
		respondServerError(c, "Failed to fetch reviews", err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(reviews, dto.Review))
}

func GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var review models.Review
	if err := loadWith(&review, id, "Business", "User"); err != nil {
		lookupError(c, "Review", err)
		return
	}
	c.JSON(http.StatusOK, dto.Review(review))
}

func saveReview(r *models.Review, create bool) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRecord(tx, &models.Business{}, r.BusinessID, "business"); err != nil {
			return err
		}
		if err := requireRecord(tx, &models.User{}, r.UserID, "user"); err != nil {
			return err
		}
		if create {
			return tx.Omit(clause.Associations).Create(r).Error
		}
		return tx.Omit(clause.Associations).Save(r).Error
	})
}

// CreateReview posts a review; the author defaults to the caller.
func CreateReview(c *gin.Context) {
	var in dto.ReviewInput
	if !bindInput(c, &in) {
		return
	}
	if in.User == 0 {
		in.User = middleware.GetUserID(c)
	}
	var review models.Review
	in.ApplyTo(&review)
	if err := saveReview(&review, true); err != nil {
		respondWriteError(c, "Review", err, "", "")
		return
	}
	if err := loadWith(&review, review.ID, "Business", "User"); err != nil {
		lookupError(c, "Review", err)
		return
	}
	c.JSON(http.StatusCreated, dto.Review(review))
}

func UpdateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var review models.Review
	if err := config.DB.First(&review, id).Error; err != nil {
		lookupError(c, "Review", err)
		return
	}
	var in dto.ReviewInput
	if isPartial(c) {
		in = dto.ReviewInputFrom(&review)
	}
	if !bindInput(c, &in) {
		return
	}
	if in.User == 0 {
		in.User = review.UserID
	}
	in.ApplyTo(&review)
	if err := saveReview(&review, false); err != nil {
		respondWriteError(c, "Review", err, "", "")
		return
	}
	if err := loadWith(&review, review.ID, "Business", "User"); err != nil {
		lookupError(c, "Review", err)
		return
	}
	c.JSON(http.StatusOK, dto.Review(review))
}

func DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Review{}, id)
	if res.Error != nil {
		respondServerError(c, "Failed to delete review", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondNotFound(c, "Review")
		return
	}
	c.Status(http.StatusNoContent)
}
