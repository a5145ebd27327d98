package userservice

// User профиль пользователя из UserService.
// Role - сырая строка; в доменную роль её конвертируют вызывающие.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"` // student | parent | teacher | admin
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
