package handlers

import (
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

func ListInventory(c *gin.Context) {
	q := filters.New().
		ExactInt("business_id", "business", c.Query("business")).
		OrderBy("id")
	if !filtersOK(c, q) {
		return
	}
	items := []models.Inventory{}
	if err := q.Apply(config.DB.Preload("Business")).Find(&items).Error; err != nil {
		respondServerError(c, "Failed to fetch inventory", err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(items, dto.Inventory))
}

func GetInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item models.Inventory
	if err := loadWith(&item, id, "Business"); err != nil {
		lookupError(c, "Inventory item", err)
		return
	}
	c.JSON(http.StatusOK, dto.Inventory(item))
}

// saveInventory writes the item; a product picture goes under the
// business's products directory.
func saveInventory(c *gin.Context, item *models.Inventory, create bool) error {
	up := newUploads(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRecord(tx, &models.Business{}, item.BusinessID, "business"); err != nil {
			return err
		}
		rel, ok, err := up.save("image", media.ProductDir(item.BusinessID))
		if err != nil {
			return err
		}
		if ok {
			up.replace(item.Image)
			item.Image = rel
		}
		if create {
			return tx.Omit(clause.Associations).Create(item).Error
		}
		return tx.Omit(clause.Associations).Save(item).Error
	})
	up.finish(err)
	return err
}

func CreateInventoryItem(c *gin.Context) {
	var in dto.InventoryInput
	if !bindInput(c, &in) {
		return
	}
	var item models.Inventory
	in.ApplyTo(&item)
	if err := saveInventory(c, &item, true); err != nil {
		respondWriteError(c, "Inventory item", err, "", "")
		return
	}
	if err := loadWith(&item, item.ID, "Business"); err != nil {
		lookupError(c, "Inventory item", err)
		return
	}
	c.JSON(http.StatusCreated, dto.Inventory(item))
}

func UpdateInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item models.Inventory
	if err := config.DB.First(&item, id).Error; err != nil {
		lookupError(c, "Inventory item", err)
		return
	}
	var in dto.InventoryInput
	if isPartial(c) {
		in = dto.InventoryInputFrom(&item)
	}
	if !bindInput(c, &in) {
		return
	}
	in.ApplyTo(&item)
	if err := saveInventory(c, &item, false); err != nil {
		respondWriteError(c, "Inventory item", err, "", "")
		return
	}
	if err := loadWith(&item, item.ID, "Business"); err != nil {
		lookupError(c, "Inventory item", err)
		return
	}
	c.JSON(http.StatusOK, dto.Inventory(item))
}

func DeleteInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Inventory{}, id)
	if res.Error != nil {
		respondServerError(c, "Failed to delete inventory item", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondNotFound(c, "Inventory item")
		return
	}
	c.Status(http.StatusNoContent)
}
