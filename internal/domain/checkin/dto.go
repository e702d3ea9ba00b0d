package checkin

type CheckInRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
}
