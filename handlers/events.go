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

// ListEvents filters by business and status; either, both or neither.
func ListEvents(c *gin.Context) {
	q := filters.New().
		ExactInt("business_id", "business", c.Query("business")).
		Exact("status", c.Query("status")).
		OrderBy("id")
	if !filtersOK(c, q) {
		return
	}
	events := []models.Event{}
	if err := q.Apply(config.DB.Preload("Business")).Find(&events).Error; err != nil {
		respondServerError(c, "Failed to fetch events", err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(events, dto.Event))
}

func GetEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var event models.Event
	if err := loadWith(&event, id, "Business"); err != nil {
		lookupError(c, "Event", err)
		return
	}
	c.JSON(http.StatusOK, dto.Event(event))
}

func saveEvent(c *gin.Context, e *models.Event, create bool) error {
	up := newUploads(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRecord(tx, &models.Business{}, e.BusinessID, "business"); err != nil {
			return err
		}
		rel, ok, err := up.save("image", media.EventDir)
		if err != nil {
			return err
		}
		if ok {
			if e.Image != nil {
				up.replace(*e.Image)
			}
			e.Image = &rel
		}
		if create {
			return tx.Omit(clause.Associations).Create(e).Error
		}
		return tx.Omit(clause.Associations).Save(e).Error
	})
	up.finish(err)
	return err
}

func CreateEvent(c *gin.Context) {
	var in dto.EventInput
	if !bindInput(c, &in) {
		return
	}
	var event models.Event
	in.ApplyTo(&event)
	if err := saveEvent(c, &event, true); err != nil {
		respondWriteError(c, "Event", err, "", "")
		return
	}
	if err := loadWith(&event, event.ID, "Business"); err != nil {
		lookupError(c, "Event", err)
		return
	}
	c.JSON(http.StatusCreated, dto.Event(event))
}

func UpdateEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var event models.Event
	if err := config.DB.First(&event, id).Error; err != nil {
		lookupError(c, "Event", err)
		return
	}
	var in dto.EventInput
	if isPartial(c) {
		in = dto.EventInputFrom(&event)
	}
	if !bindInput(c, &in) {
		return
	}
	in.ApplyTo(&event)
	if err := saveEvent(c, &event, false); err != nil {
		respondWriteError(c, "Event", err, "", "")
		return
	}
	if err := loadWith(&event, event.ID, "Business"); err != nil {
		lookupError(c, "Event", err)
		return
	}
	c.JSON(http.StatusOK, dto.Event(event))
}

func DeleteEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Event{}, id)
	if res.Error != nil {
		respondServerError(c, "Failed to delete event", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondNotFound(c, "Event")
		return
	}
	c.Status(http.StatusNoContent)
}
