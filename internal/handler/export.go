package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/lijie8778708/DevConnector/internal/models"
	"github.com/lijie8778708/DevConnector/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 导出当前用户的履历
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var historyHeaders = []string{"Section", "Title", "Organization", "Field", "Location", "From", "To", "Current", "Description"}

// historyRows 先工作经历后教育经历展开为行，最新的在前
func historyRows(p *models.Profile) [][]string {
	rows := make([][]string, 0, len(p.Experience)+len(p.Education))
	for _, e := range p.Experience {
		rows = append(rows, []string{
			"experience", e.Title, e.Company, "", e.Location,
			e.From, e.To, strconv.FormatBool(e.Current), e.Description,
		})
	}
	for _, e := range p.Education {
		rows = append(rows, []string{
			"education", e.Degree, e.School, e.FieldOfStudy, "",
			e.From, e.To, strconv.FormatBool(e.Current), e.Description,
		})
	}
	return rows
}

func (h *ExportHandler) loadProfile(c *gin.Context) (*models.Profile, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	var profile models.Profile
	if err := h.DB.WithContext(c.Request.Context()).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "There is no profile for this user")
		} else {
			logger.Log.WithError(err).Error("load profile for export")
			util.ServerError(c)
		}
		return nil, false
	}
	return &profile, true
}

// ExportCSV 导出为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"history_%s.csv\"",
		time.Now().Format("20060102")))

	// 响应已开始写出，失败时只能记录日志
	if err := writeHistoryCSV(c.Writer, profile); err != nil {
		logger.Log.WithError(err).WithField("user_id", profile.UserID).Error("write csv")
	}
}

func writeHistoryCSV(w io.Writer, p *models.Profile) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(historyHeaders); err != nil {
		return err
	}
	for _, row := range historyRows(p) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportXLSX 导出为单工作表的 Excel
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "History"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		logger.Log.WithError(err).Error("rename sheet")
		util.ServerError(c)
		return
	}

	for i, hdr := range historyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, hdr)
	}
	for r, row := range historyRows(profile) {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "D", 24)
	_ = f.SetColWidth(sheetName, "E", "H", 12)
	_ = f.SetColWidth(sheetName, "I", "I", 40)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"history_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		logger.Log.WithError(err).Error("write xlsx")
	}
}
