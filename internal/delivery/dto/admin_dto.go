package dto

type StatsResponse struct {
	TotalPatients     int64 `json:"totalPatients"`
	TotalDoctors      int64 `json:"totalDoctors"`
	TotalAppointments int64 `json:"totalAppointments"`
	TotalRevenue      int64 `json:"totalRevenue"`
}

type RevenueResponse struct {
	TotalRevenue int64             `json:"totalRevenue"`
	Payments     []PaymentResponse `json:"payments"`
}
