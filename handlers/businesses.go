package handlers

import (
	"net/http"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/filters"
	"business-directory-api/media"
	"business-directory-api/middleware"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgDuplicatePhone = "business with this phone already exists."

// ListBusinesses returns every business, narrowed by the optional
// category, address, zipcode and name filters.
func ListBusinesses(c *gin.Context) {
	q := filters.New().
		Exact("category", c.Query("category")).
		IContains("address", c.Query("address")).
		Exact("zipcode", c.Query("zipcode")).
		IContains("b_name", c.Query("name")).
		OrderBy("id")

	businesses := []models.Business{}
	if err := q.Apply(config.DB.Model(&models.Business{})).Find(&businesses).Error; err != nil {
		respondServerError(c, "Failed to fetch businesses", err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// GetOwnerBusinesses returns the businesses owned by the caller.
func GetOwnerBusinesses(c *gin.Context) {
	businesses := []models.Business{}
	if err := config.DB.Where("owner_id = ?", middleware.GetUserID(c)).Order("id").Find(&businesses).Error; err != nil {
		respondServerError(c, "Failed to fetch businesses", err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

func GetBusiness(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var business models.Business
	if err := config.DB.First(&business, id).Error; err != nil {
		lookupError(c, "Business", err)
		return
	}
	c.JSON(http.StatusOK, business)
}

func phoneTaken(db *gorm.DB, phone string, exceptID uint) error {
	var n int64
	if err := db.Model(&models.Business{}).Where("phone = ? AND id <> ?", phone, exceptID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return dto.Invalid("phone", msgDuplicatePhone)
	}
	return nil
}

// saveBusiness writes b and its main image in one transaction.
func saveBusiness(c *gin.Context, b *models.Business, create bool) error {
	up := newUploads(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := phoneTaken(tx, b.Phone, b.ID); err != nil {
			return err
		}
		if create {
			if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
				return err
			}
		}
		rel, ok, err := up.save("images", media.BusinessMainDir(b.ID))
		if err != nil {
			return err
		}
		if ok {
			up.replace(b.Images)
			b.Images = rel
		}
		if !create || ok {
			return tx.Omit(clause.Associations).Save(b).Error
		}
		return nil
	})
	up.finish(err)
	return err
}

// CreateBusiness registers a business owned by the caller. Any owner sent
// by the client is ignored.
func CreateBusiness(c *gin.Context) {
	var in dto.BusinessInput
	if !bindInput(c, &in) {
		return
	}
	if fe := in.Check(); fe != nil {
		respondValidation(c, fe)
		return
	}
	var business models.Business
	in.ApplyTo(&business)
	business.OwnerID = middleware.GetUserID(c)

	if err := saveBusiness(c, &business, true); err != nil {
		respondWriteError(c, "Business", err, "phone", msgDuplicatePhone)
		return
	}
	c.JSON(http.StatusCreated, business)
}

// loadOwnedBusiness fetches :id and checks that the caller owns it.
func loadOwnedBusiness(c *gin.Context) (*models.Business, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	var business models.Business
	if err := config.DB.First(&business, id).Error; err != nil {
		lookupError(c, "Business", err)
		return nil, false
	}
	if err := access.CheckOwner(middleware.GetCaller(c), business.OwnerID); err != nil {
		middleware.AbortWithAccessError(c, err)
		return nil, false
	}
	return &business, true
}

// UpdateBusiness handles PUT and PATCH by the owner.
func UpdateBusiness(c *gin.Context) {
	business, ok := loadOwnedBusiness(c)
	if !ok {
		return
	}
	var in dto.BusinessInput
	if isPartial(c) {
		in = dto.BusinessInputFrom(business)
	}
	if !bindInput(c, &in) {
		return
	}
	if fe := in.Check(); fe != nil {
		respondValidation(c, fe)
		return
	}
	in.ApplyTo(business)

	if err := saveBusiness(c, business, false); err != nil {
		respondWriteError(c, "Business", err, "phone", msgDuplicatePhone)
		return
	}
	c.JSON(http.StatusOK, business)
}

// DeleteBusiness removes the business and everything attached to it.
func DeleteBusiness(c *gin.Context) {
	business, ok := loadOwnedBusiness(c)
	if !ok {
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return models.DeleteBusiness(tx, business.ID)
	})
	if err != nil {
		respondWriteError(c, "Business", err, "", "")
		return
	}
	c.Status(http.StatusNoContent)
}
