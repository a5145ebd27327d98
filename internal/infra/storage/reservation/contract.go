package reservation

import "github.com/tutorlane/booking-service/pkg/txmanager"

// Переиспользуем интерфейсы из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor
