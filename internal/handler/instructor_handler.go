package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/service"
	"github.com/yourusername/learning-api/internal/service/analytics"
)

// InstructorUseCase - операции автора курса над тестами
type InstructorUseCase interface {
	GetQuizStatistics(ctx context.Context, actor service.Actor, courseID, quizID uint) (*analytics.QuizStatistics, error)
	ListQuizAttempts(ctx context.Context, actor service.Actor, courseID, quizID uint) (*entity.Quiz, []entity.Attempt, error)
}

// exportTimeLayout - формат времени попытки в выгрузке
const exportTimeLayout = "2006-01-02 15:04:05"

var exportHeaders = []string{"Attempt", "Student", "Email", "Score", "Passed", "Correct", "Total questions", "Submitted at"}

// InstructorHandler обрабатывает запросы авторов курсов
type InstructorHandler struct {
	quizService InstructorUseCase
	now         func() time.Time
}

// NewInstructorHandler создает новый обработчик для авторов курсов
func NewInstructorHandler(quizService InstructorUseCase) *InstructorHandler {
	return &InstructorHandler{quizService: quizService, now: time.Now}
}

// GetQuizStatistics возвращает агрегированную статистику попыток теста
// GET /api/instructor/courses/:courseId/quizzes/:quizId/statistics
func (h *InstructorHandler) GetQuizStatistics(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	quizID := c.MustGet(QuizIDKey).(uint)

	stats, err := h.quizService.GetQuizStatistics(c.Request.Context(), actorFromContext(c), courseID, quizID)
	if err != nil {
		handleServiceError(c, "InstructorHandler", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// exportRow - одна строка выгрузки
type exportRow struct {
	AttemptID   uint
	Student     string
	Email       string
	Score       float64
	Passed      bool
	Correct     int
	Total       int
	SubmittedAt time.Time
}

func newExportRows(attempts []entity.Attempt) []exportRow {
	rows := make([]exportRow, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		row := exportRow{
			AttemptID:   a.ID,
			Score:       a.Score,
			Passed:      a.Passed,
			SubmittedAt: a.CreatedAt,
		}
		if a.User != nil {
			row.Student = a.User.DisplayName()
			row.Email = a.User.Email
		}
		results := a.QuestionResults()
		row.Total = len(results)
		for _, r := range results {
			if r.IsCorrect {
				row.Correct++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// ExportQuizAttempts выгружает все попытки теста в CSV или Excel
// GET /api/instructor/courses/:courseId/quizzes/:quizId/attempts/export?format=csv|xlsx
func (h *InstructorHandler) ExportQuizAttempts(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	quizID := c.MustGet(QuizIDKey).(uint)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	quiz, attempts, err := h.quizService.ListQuizAttempts(c.Request.Context(), actorFromContext(c), courseID, quizID)
	if err != nil {
		handleServiceError(c, "InstructorHandler", err)
		return
	}

	rows := newExportRows(attempts)
	filename := fmt.Sprintf("quiz_%d_attempts_%s", quiz.ID, h.now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

// exportCSV пишет CSV с BOM, чтобы Excel корректно открыл UTF-8
func (h *InstructorHandler) exportCSV(c *gin.Context, rows []exportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{
			strconv.FormatUint(uint64(r.AttemptID), 10),
			sanitizeForExcel(r.Student),
			sanitizeForExcel(r.Email),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			yesNo(r.Passed),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Total),
			r.SubmittedAt.UTC().Format(exportTimeLayout),
		})
	}
}

// exportXLSX пишет Excel через StreamWriter
func (h *InstructorHandler) exportXLSX(c *gin.Context, rows []exportRow, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attempts"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[InstructorHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, 0, len(exportHeaders))
	for _, hdr := range exportHeaders {
		headers = append(headers, hdr)
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[InstructorHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.AttemptID,
			sanitizeForExcel(r.Student),
			sanitizeForExcel(r.Email),
			r.Score,
			yesNo(r.Passed),
			r.Correct,
			r.Total,
			r.SubmittedAt.UTC().Format(exportTimeLayout),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[InstructorHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[InstructorHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[InstructorHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
