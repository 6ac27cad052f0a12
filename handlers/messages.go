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

func ListMessages(c *gin.Context) {
	q := filters.New().
		ExactInt("business_id", "business", c.Query("business")).
		ExactInt("user_id", "user", c.Query("user")).
		OrderBy("id")
	if !filtersOK(c, q) {
		return
	}
	messages := []models.Message{}
	if err := q.Apply(config.DB.Preload("Business").Preload("User")).Find(&messages).Error; err != nil {
		respondServerError(c, "Failed to fetch messages", err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(messages, dto.Message))
}

func GetMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var message models.Message
	if err := loadWith(&message, id, "Business", "User"); err != nil {
		lookupError(c, "Message", err)
		return
	}
	c.JSON(http.StatusOK, dto.Message(message))
}

func saveMessage(m *models.Message, create bool) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRecord(tx, &models.Business{}, m.BusinessID, "business"); err != nil {
			return err
		}
		if err := requireRecord(tx, &models.User{}, m.UserID, "user"); err != nil {
			return err
		}
		if create {
			return tx.Omit(clause.Associations).Create(m).Error
		}
		return tx.Omit(clause.Associations).Save(m).Error
	})
}

// CreateMessage sends a message to a business; the sender defaults to the caller.
func CreateMessage(c *gin.Context) {
	var in dto.MessageInput
	if !bindInput(c, &in) {
		return
	}
	if in.User == 0 {
		in.User = middleware.GetUserID(c)
	}
	var message models.Message
	in.ApplyTo(&message)
	if err := saveMessage(&message, true); err != nil {
		respondWriteError(c, "Message", err, "", "")
		return
	}
	if err := loadWith(&message, message.ID, "Business", "User"); err != nil {
		lookupError(c, "Message", err)
		return
	}
	c.JSON(http.StatusCreated, dto.Message(message))
}

func UpdateMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var message models.Message
	if err := config.DB.First(&message, id).Error; err != nil {
		lookupError(c, "Message", err)
		return
	}
	var in dto.MessageInput
	if isPartial(c) {
		in = dto.MessageInputFrom(&message)
	}
	if !bindInput(c, &in) {
		return
	}
	if in.User == 0 {
		in.User = message.UserID
	}
	in.ApplyTo(&message)
	if err := saveMessage(&message, false); err != nil {
		respondWriteError(c, "Message", err, "", "")
		return
	}
	if err := loadWith(&message, message.ID, "Business", "User"); err != nil {
		lookupError(c, "Message", err)
		return
	}
	c.JSON(http.StatusOK, dto.Message(message))
}

func DeleteMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Message{}, id)
	if res.Error != nil {
		respondServerError(c, "Failed to delete message", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondNotFound(c, "Message")
		return
	}
	c.Status(http.StatusNoContent)
}
