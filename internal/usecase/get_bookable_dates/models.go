package get_bookable_dates

// Request модель запроса на получение доступных дат календарного месяца
type Request struct {
	TeacherID int64
	Year      int
	Month     int // 1-12
}

// Response модель ответа: даты месяца, на которые есть хотя бы один
// свободный слот минимальной настроенной длительности
type Response struct {
	TeacherID int64
	Year      int
	Month     int
	Dates     []string // YYYY-MM-DD, по возрастанию
}
