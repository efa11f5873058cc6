package v1

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Transactions"
	mimeCSV         = "text/csv; charset=utf-8"
	mimeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []string{"id", "category", "amount", "description", "date"}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Security		BearerAuth
// @Router			/v1/transactions/export [options]
func OptionsTransactionExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export transactions
// @Description	Exports all transactions of the authenticated user ordered by date as CSV or XLSX file
// @Tags			Transactions
// @Produce		text/csv
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			format	query		string	false	"File format, csv or xlsx. Defaults to csv."
// @Security		BearerAuth
// @Router			/v1/transactions/export [get]
func ExportTransactions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		abortWithError(c, errInvalidExportFormat)
		return
	}

	var transactions []models.Transaction
	err := models.DB.
		Scopes(models.OwnedBy(auth.CurrentUser(c))).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	rows := make([][]string, 0, len(transactions)+1)
	rows = append(rows, exportHeader)
	for _, t := range transactions {
		rows = append(rows, []string{
			t.ID.String(),
			t.CategoryID.String(),
			money(t.Amount),
			t.Description,
			t.Date.Format(time.RFC3339),
		})
	}

	var (
		data     []byte
		mimeType string
	)

	switch format {
	case "csv":
		data, err = exportCSV(rows)
		mimeType = mimeCSV
	case "xlsx":
		data, err = exportSpreadsheet(rows)
		mimeType = mimeSpreadsheet
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mimeType, data)
}

func exportCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	err := w.WriteAll(rows)
	if err != nil {
		return nil, fmt.Errorf("writing CSV export: %w", err)
	}

	return buf.Bytes(), nil
}

func exportSpreadsheet(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName(f.GetSheetName(0), exportSheet)
	if err != nil {
		return nil, fmt.Errorf("naming export sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}

		err = f.SetSheetRow(exportSheet, cell, &row)
		if err != nil {
			return nil, fmt.Errorf("writing row %d of XLSX export: %w", i+1, err)
		}
	}

	// Wide enough for UUIDs and timestamps
	_ = f.SetColWidth(exportSheet, "A", "B", 38)
	_ = f.SetColWidth(exportSheet, "D", "E", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing XLSX export: %w", err)
	}

	return buf.Bytes(), nil
}
