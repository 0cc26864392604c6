package models

// DashboardStats is the backend summary for the admin dashboard
type DashboardStats struct {
	TotalUsers      int `json:"totalUsers"`
	TotalTutors     int `json:"totalTutors"`
	TotalStudents   int `json:"totalStudents"`
	TotalTuitions   int `json:"totalTuitions"`
	PendingTuitions int `json:"pendingTuitions"`
}

// AdminDashboard is the admin landing view
type AdminDashboard struct {
	Stats              DashboardStats        `json:"stats"`
	TotalRevenue       float64               `json:"totalRevenue"`
	Monthly            []MonthTotal          `json:"monthly"`
	StatusBreakdown    map[PaymentStatus]int `json:"statusBreakdown"`
	RecentTransactions []Payment             `json:"recentTransactions"`
}
