package handlers

import (
	"fmt"
	"net/http"

	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/filters"
	"business-directory-api/media"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ListBusinessImages(c *gin.Context) {
	q := filters.New().
		ExactInt("business_id", "business", c.Query("business")).
		OrderBy("id")
	if !filtersOK(c, q) {
		return
	}
	sets := []models.BusinessImages{}
	if err := q.Apply(config.DB.Preload("Business")).Find(&sets).Error; err != nil {
		respondServerError(c, "Failed to fetch business images", err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(sets, dto.BusinessImages))
}

func GetBusinessImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var set models.BusinessImages
	if err := loadWith(&set, id, "Business"); err != nil {
		lookupError(c, "Business images", err)
		return
	}
	c.JSON(http.StatusOK, dto.BusinessImages(set))
}

// saveBusinessImages stores whichever of image_1..image_4 were uploaded.
// Slots that were not sent keep their current file.
func saveBusinessImages(c *gin.Context, set *models.BusinessImages, create bool) error {
	up := newUploads(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRecord(tx, &models.Business{}, set.BusinessID, "business"); err != nil {
			return err
		}
		for i, slot := range set.Slots() {
			rel, ok, err := up.save(fmt.Sprintf("image_%d", i+1), media.BusinessOptionalDir(set.BusinessID))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if *slot != nil {
				up.replace(**slot)
			}
			*slot = &rel
		}
		if create {
			return tx.Omit(clause.Associations).Create(set).Error
		}
		return tx.Omit(clause.Associations).Save(set).Error
	})
	up.finish(err)
	return err
}

func CreateBusinessImages(c *gin.Context) {
	var in dto.BusinessImagesInput
	if !bindInput(c, &in) {
		return
	}
	set := models.BusinessImages{BusinessID: in.Business}
	if err := saveBusinessImages(c, &set, true); err != nil {
		respondWriteError(c, "Business images", err, "", "")
		return
	}
	if err := loadWith(&set, set.ID, "Business"); err != nil {
		lookupError(c, "Business images", err)
		return
	}
	c.JSON(http.StatusCreated, dto.BusinessImages(set))
}

func UpdateBusinessImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var set models.BusinessImages
	if err := config.DB.First(&set, id).Error; err != nil {
		lookupError(c, "Business images", err)
		return
	}
	in := dto.BusinessImagesInput{Business: set.BusinessID}
	if !bindInput(c, &in) {
		return
	}
	set.BusinessID = in.Business
	if err := saveBusinessImages(c, &set, false); err != nil {
		respondWriteError(c, "Business images", err, "", "")
		return
	}
	if err := loadWith(&set, set.ID, "Business"); err != nil {
		lookupError(c, "Business images", err)
		return
	}
	c.JSON(http.StatusOK, dto.BusinessImages(set))
}

func DeleteBusinessImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.BusinessImages{}, id)
	if res.Error != nil {
		respondServerError(c, "Failed to delete business images", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondNotFound(c, "Business images")
		return
	}
	c.Status(http.StatusNoContent)
}
