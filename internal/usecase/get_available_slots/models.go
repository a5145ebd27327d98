package get_available_slots

import "time"

// Request модель запроса доступных слотов преподавателя на дату
type Request struct {
	TeacherID int64     // ID преподавателя
	Date      time.Time // Дата (без времени)
}

// Slot слот расписания с признаком занятости
type Slot struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:00"
	Label     string `json:"label"`     // "09:00 - 10:00"
	Booked    bool   `json:"booked"`
}

// Response модель ответа со слотами на дату
type Response struct {
	TeacherID int64  `json:"teacherId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Slots     []Slot `json:"slots"`
}
