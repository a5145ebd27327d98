package create_reservation

import (
	"time"

	"github.com/tutorlane/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ActorID   int64            // ID пользователя, выполняющего запрос
	StudentID int64            // ID студента, для которого бронируется занятие
	TeacherID int64            // ID преподавателя
	CourseID  string           // Тарифный план ("light", "half", "free")
	Date      time.Time        // Дата занятия (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Время окончания (например, "11:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	StudentID int64            // ID студента
	TeacherID int64            // ID преподавателя
	CourseID  string           // Тарифный план
	Date      time.Time        // Дата занятия
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания
	Status    string           // Статус бронирования
	Notes     *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
