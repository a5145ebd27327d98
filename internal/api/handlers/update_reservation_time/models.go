package update_reservation_time

// UpdateTimeRequest HTTP request model
type UpdateTimeRequest struct {
	StartTime string `json:"startTime"` // "14:00"
	EndTime   string `json:"endTime"`   // "15:00"
}
