package services

// Query resources. A key is one of these plus the parameters its result
// depends on.
const (
	ResTuitionsAll         = "tuitions:all"
	ResTuition             = "tuitions:detail"
	ResTuitionsMine        = "tuitions:mine"
	ResApplicationsMine    = "applications:mine"
	ResApplicationsStudent = "applications:student"
	ResUsers               = "users"
	ResUserLogs            = "users:logs"
	ResDashboardStats      = "admin:stats"
	ResTransactions        = "admin:transactions"
	ResPaymentsMine        = "payments:mine"
	ResRevenue             = "payments:revenue"
	ResProfile             = "profile"
)
