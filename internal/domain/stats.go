package domain

type Stats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalSellers      int `json:"totalSellers"`
	PendingRequests   int `json:"pendingRequests"`
	ActiveSellers     int `json:"activeSellers"`
	TotalProducts     int `json:"totalProducts"`
	AvailableProducts int `json:"availableProducts"`
	HiddenProducts    int `json:"hiddenProducts"`
	TotalOrders       int `json:"totalOrders"`
}
