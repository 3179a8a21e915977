package model

type DashboardMetrics struct {
	TotalSales           int   `json:"totalSales"`
	MonthlyRevenue       int64 `json:"monthlyRevenue"`
	ServiceAppointments  int   `json:"serviceAppointments"`
	CustomerSatisfaction int   `json:"customerSatisfaction"`
	InventoryCount       int   `json:"inventoryCount"`
	LeadConversions      int   `json:"leadConversions"`
}

// MockDashboardMetrics is what the dashboard shows until a sales backend exists.
var MockDashboardMetrics = DashboardMetrics{
	TotalSales:           179,
	MonthlyRevenue:       2400000,
	ServiceAppointments:  255,
	CustomerSatisfaction: 92,
	InventoryCount:       342,
	LeadConversions:      68,
}
