package handlers

import (
	"net/http"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/media"
	"business-directory-api/middleware"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const msgDuplicateUsername = "A user with that username already exists."

func usernameTaken(db *gorm.DB, username string, exceptID uint) error {
	var n int64
	if err := db.Model(&models.User{}).Where("username = ? AND id <> ?", username, exceptID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return dto.Invalid("username", msgDuplicateUsername)
	}
	return nil
}

// saveUser inserts or updates u together with an uploaded profile picture.
func saveUser(c *gin.Context, u *models.User, create bool) error {
	up := newUploads(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := usernameTaken(tx, u.Username, u.ID); err != nil {
			return err
		}
		rel, ok, err := up.save("profile_picture", media.ProfileDir)
		if err != nil {
			return err
		}
		if ok {
			up.replace(u.ProfilePicture)
			u.ProfilePicture = rel
		}
		if create {
			return tx.Create(u).Error
		}
		return tx.Save(u).Error
	})
	up.finish(err)
	return err
}

func ListUsers(c *gin.Context) {
	users := []models.User{}
	if err := config.DB.Order("id").Find(&users).Error; err != nil {
		respondServerError(c, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		lookupError(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser adds an account through the general users collection.
func CreateUser(c *gin.Context) {
	var in dto.UserInput
	if !bindInput(c, &in) {
		return
	}
	if in.Password == "" {
		respondValidation(c, dto.Invalid("password", "This field is required."))
		return
	}
	user := models.User{IsActive: true}
	if err := in.ApplyTo(&user); err != nil {
		respondServerError(c, "Failed to hash password", err)
		return
	}
	if err := saveUser(c, &user, true); err != nil {
		respondWriteError(c, "User", err, "username", msgDuplicateUsername)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT and PATCH by the account holder. A new password is hashed; omitting it
// keeps the current one.
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		lookupError(c, "User", err)
		return
	}
	if err := access.CheckSelf(middleware.GetCaller(c), user.ID); err != nil {
		middleware.AbortWithAccessError(c, err)
		return
	}
	var in dto.UserInput
	if isPartial(c) {
		in = dto.UserInputFrom(&user)
	}
	if !bindInput(c, &in) {
		return
	}
	if err := in.ApplyTo(&user); err != nil {
		respondServerError(c, "Failed to hash password", err)
		return
	}
	if err := saveUser(c, &user, false); err != nil {
		respondWriteError(c, "User", err, "username", msgDuplicateUsername)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the caller's own account with its reviews, messages
// and businesses.
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := access.CheckSelf(middleware.GetCaller(c), id); err != nil {
		middleware.AbortWithAccessError(c, err)
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return models.DeleteUser(tx, id)
	})
	if err != nil {
		respondWriteError(c, "User", err, "", "")
		return
	}
	c.Status(http.StatusNoContent)
}
