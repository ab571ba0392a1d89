package dto

// DashboardStatsResponse is the admin overview: headline counts, total
// revenue, and a handful of recent and top items.
type DashboardStatsResponse struct {
	TotalUsers       int64             `json:"total_users"`
	TotalProducts    int64             `json:"total_products"`
	TotalOrders      int64             `json:"total_orders"`
	TotalSales       float64           `json:"total_sales"`
	RecentOrders     []OrderResponse   `json:"recent_orders"`
	TopRatedProducts []ProductResponse `json:"top_rated_products"`
}
