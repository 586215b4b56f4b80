package model

type AdminStats struct {
	TotalCourses         int64 `json:"totalCourses"`
	TotalStudents        int64 `json:"totalStudents"`
	TotalAdmins          int64 `json:"totalAdmins"`
	TotalEnrollments     int64 `json:"totalEnrollments"`
	CompletedEnrollments int64 `json:"completedEnrollments"`
	PendingReviews       int64 `json:"pendingReviews"`
}

type EnrollmentTrendPoint struct {
	Date        string `json:"date"`
	Enrollments int64  `json:"enrollments"`
}
