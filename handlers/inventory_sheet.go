package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/middleware"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var sheetHeader = []string{"product_name", "description", "quantity", "price"}

// readInventorySheet parses the first sheet of an xlsx workbook. Every bad
// row is reported; callers must not import a partially valid file.
func readInventorySheet(r io.Reader, businessID uint) ([]models.Inventory, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, dto.Invalid("file", "Upload a valid xlsx workbook.")
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 || !headerMatches(rows[0]) {
		return nil, dto.Invalid("file", "The first row must be: "+strings.Join(sheetHeader, ", ")+".")
	}

	fe := dto.FieldErrors{}
	var items []models.Inventory
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		key := fmt.Sprintf("row_%d", i+2)
		item, msgs := parseInventoryRow(row)
		for _, m := range msgs {
			fe.Add(key, m)
		}
		if len(msgs) == 0 {
			item.BusinessID = businessID
			items = append(items, item)
		}
	}
	if len(fe) > 0 {
		return nil, fe
	}
	if len(items) == 0 {
		return nil, dto.Invalid("file", "The sheet has no data rows.")
	}
	return items, nil
}

func headerMatches(row []string) bool {
	if len(row) < len(sheetHeader) {
		return false
	}
	for i, h := range sheetHeader {
		if strings.ToLower(strings.TrimSpace(row[i])) != h {
			return false
		}
	}
	return true
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseInventoryRow(row []string) (models.Inventory, []string) {
	var msgs []string
	item := models.Inventory{
		ProductName: cell(row, 0),
		Description: cell(row, 1),
	}
	switch {
	case item.ProductName == "":
		msgs = append(msgs, "product_name: This field is required.")
	case len([]rune(item.ProductName)) > 50:
		msgs = append(msgs, "product_name: Ensure this field has no more than 50 characters.")
	}
	if item.Description == "" {
		msgs = append(msgs, "description: This field is required.")
	}
	qty, err := strconv.Atoi(cell(row, 2))
	if err != nil {
		msgs = append(msgs, "quantity: A valid integer is required.")
	}
	item.Quantity = qty
	price, err := strconv.ParseFloat(cell(row, 3), 64)
	switch {
	case err != nil:
		msgs = append(msgs, "price: A valid number is required.")
	case price < 0 || price >= 1e8:
		msgs = append(msgs, "price: Ensure this value is between 0 and 99999999.99.")
	}
	item.Price = models.RoundPrice(price)
	return item, msgs
}

// ImportInventory adds every row of an uploaded workbook to a business the
// caller owns.
func ImportInventory(c *gin.Context) {
	businessID, err := strconv.ParseUint(c.PostForm("business"), 10, 64)
	if err != nil || businessID == 0 {
		respondValidation(c, dto.Invalid("business", "This field is required."))
		return
	}
	var business models.Business
	if err := config.DB.First(&business, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondValidation(c, dto.Invalid("business", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", businessID)))
			return
		}
		respondServerError(c, "Failed to fetch business", err)
		return
	}
	if err := access.CheckOwner(middleware.GetCaller(c), business.OwnerID); err != nil {
		middleware.AbortWithAccessError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, dto.Invalid("file", "No file was submitted."))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondServerError(c, "Failed to read upload", err)
		return
	}
	defer f.Close()

	items, err := readInventorySheet(f, business.ID)
	if err != nil {
		respondWriteError(c, "Inventory item", err, "", "")
		return
	}
	if err := config.DB.Omit("Business").Create(&items).Error; err != nil {
		respondServerError(c, "Failed to import inventory", err)
		return
	}
	for i := range items {
		items[i].Business = business
	}
	c.JSON(http.StatusCreated, gin.H{"imported": len(items), "items": dto.Map(items, dto.Inventory)})
}

// ExportInventory streams the inventory of one business as a workbook in
// the same layout ImportInventory reads.
func ExportInventory(c *gin.Context) {
	businessID, err := strconv.ParseUint(c.Query("business"), 10, 64)
	if err != nil || businessID == 0 {
		respondValidation(c, dto.Invalid("business", "Enter a whole number."))
		return
	}
	var items []models.Inventory
	if err := config.DB.Where("business_id = ?", businessID).Order("id").Find(&items).Error; err != nil {
		respondServerError(c, "Failed to fetch inventory", err)
		return
	}
	xl, err := writeInventorySheet(items)
	if err != nil {
		respondServerError(c, "Failed to build workbook", err)
		return
	}
	defer xl.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="inventory_%d.xlsx"`, businessID))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := xl.Write(c.Writer); err != nil {
		slog.Warn("inventory export interrupted", "business", businessID, "error", err)
	}
}

func writeInventorySheet(items []models.Inventory) (*excelize.File, error) {
	xl := excelize.NewFile()
	const sheet = "Inventory"
	if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	header := make([]any, len(sheetHeader))
	for i, h := range sheetHeader {
		header[i] = h
	}
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, item := range items {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{item.ProductName, item.Description, item.Quantity, item.Price}
		if err := xl.SetSheetRow(sheet, axis, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return xl, nil
}
