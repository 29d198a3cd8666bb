package packets

// REQUESTS FOR /api/admin/mosques/*

type CreateMosqueRequest struct {
	Key               string  `json:"key" binding:"required"`
	Name              string  `json:"name" binding:"required"`
	City              string  `json:"city"`
	Timezone          string  `json:"timezone"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	CalculationMethod string  `json:"calculation_method"`
}

type StartSimulationRequest struct {
	State      string `json:"state" binding:"required"`
	Prayer     string `json:"prayer"`
	PlaylistID string `json:"playlist_id"`
}

type CreateDisplayRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type ClaimDisplayRequest struct {
	PairingCode string `json:"code" binding:"required"`
	DisplayID   int    `json:"display_id" binding:"required"`
}

type TestSendRequest struct {
	Message string `json:"message" binding:"required"`
}
