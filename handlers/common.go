package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/filters"
	"business-directory-api/media"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return 0, false
	}
	return uint(id), true
}

// isPartial reports whether the request updates only the fields it sends.
func isPartial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}

// bindInput binds a JSON or multipart body into in, writing a 400 on failure.
func bindInput(c *gin.Context, in any) bool {
	if err := c.ShouldBind(in); err != nil {
		respondValidation(c, dto.FromBindError(err))
		return false
	}
	return true
}

func respondValidation(c *gin.Context, fe dto.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fe})
}

func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func respondServerError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "path", c.FullPath(), "method", c.Request.Method)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// filtersOK writes a 400 when a query parameter could not be parsed.
func filtersOK(c *gin.Context, q *filters.Builder) bool {
	var invalid *filters.InvalidParamError
	if errors.As(q.Err(), &invalid) {
		respondValidation(c, dto.Invalid(invalid.Param, "Enter a whole number."))
		return false
	}
	return true
}

// lookupError maps a failed single-record load to 404 or 500.
func lookupError(c *gin.Context, what string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, what)
		return
	}
	respondServerError(c, "Failed to fetch "+strings.ToLower(what), err)
}

// respondWriteError maps the failure of a create, update or delete.
// dupField names the unique field a duplicate-key error refers to.
func respondWriteError(c *gin.Context, what string, err error, dupField, dupMsg string) {
	var fe dto.FieldErrors
	switch {
	case errors.As(err, &fe):
		respondValidation(c, fe)
	case errors.Is(err, gorm.ErrDuplicatedKey) && dupField != "":
		respondValidation(c, dto.Invalid(dupField, dupMsg))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		respondValidation(c, dto.Invalid("non_field_errors", "A referenced record does not exist."))
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, what)
	default:
		respondServerError(c, "Failed to save "+strings.ToLower(what), err)
	}
}

// requireRecord returns a field error when no row of model has the given id.
func requireRecord(db *gorm.DB, model any, id uint, field string) error {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return dto.Invalid(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return nil
}

// uploads tracks files written during one request so they can be undone if
// the database write fails, and old files dropped once it succeeds.
type uploads struct {
	c        *gin.Context
	store    *media.Store
	saved    []string
	replaced []string
}

func newUploads(c *gin.Context) *uploads {
	return &uploads{c: c, store: media.NewStore(config.AppConfig.MediaRoot)}
}

// save stores the file sent in form field, if any. Validation problems are
// returned as field errors.
func (u *uploads) save(field, dir string) (string, bool, error) {
	if !strings.HasPrefix(u.c.ContentType(), "multipart/form-data") {
		return "", false, nil
	}
	fh, err := u.c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dto.Invalid(field, "Upload a valid image.")
	}
	rel, err := u.store.Save(fh, dir)
	switch {
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, media.ErrUnsupported):
		return "", false, dto.Invalid(field, err.Error())
	case err != nil:
		return "", false, err
	}
	u.saved = append(u.saved, rel)
	return rel, true, nil
}

// replace marks an old file for removal after a successful write.
func (u *uploads) replace(old string) {
	if old != "" {
		u.replaced = append(u.replaced, old)
	}
}

// finish removes new files when err is set, old ones otherwise.
func (u *uploads) finish(err error) {
	drop := u.replaced
	if err != nil {
		drop = u.saved
	}
	for _, rel := range drop {
		if rmErr := u.store.Remove(rel); rmErr != nil {
			slog.Warn("could not remove media file", "path", rel, "error", rmErr)
		}
	}
}

// loadWith fetches one record by id with the named associations preloaded.
func loadWith(dest any, id uint, preloads ...string) error {
	q := config.DB
	for _, p := range preloads {
		q = q.Preload(p)
	}
	return q.First(dest, id).Error
}
