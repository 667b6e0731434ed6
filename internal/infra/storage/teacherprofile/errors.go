package teacherprofile

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль преподавателя не найден
	ErrProfileNotFound = errors.New("teacherprofile.repository: profile not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("teacherprofile.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("teacherprofile.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("teacherprofile.repository: failed to scan row")
)
