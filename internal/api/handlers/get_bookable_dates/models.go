package get_bookable_dates

import (
	"fmt"
	"strconv"

	getBookableDates "github.com/m04kA/MTC-LessonService/internal/usecase/get_bookable_dates"
)

// BookableDatesResponse HTTP response model
type BookableDatesResponse struct {
	TeacherID int64    `json:"teacherId"`
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Dates     []string `json:"dates"` // YYYY-MM-DD, по возрастанию
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(teacherID int64, yearStr, monthStr string) (*getBookableDates.Request, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("invalid year: %w", err)
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid month: %w", err)
	}

	return &getBookableDates.Request{
		TeacherID: teacherID,
		Year:      year,
		Month:     month,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookableDates.Response) *BookableDatesResponse {
	dates := resp.Dates
	if dates == nil {
		dates = []string{}
	}

	return &BookableDatesResponse{
		TeacherID: resp.TeacherID,
		Year:      resp.Year,
		Month:     resp.Month,
		Dates:     dates,
	}
}
