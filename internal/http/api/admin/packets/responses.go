package packets

// RESPONSES FOR /api/admin/mosques/*

// DisplayResponse mirrors model.Display but flattens times to RFC3339
type DisplayResponse struct {
	ID        int     `json:"id"`
	DeviceID  *string `json:"device_id"`
	MosqueKey string  `json:"mosque_key"`
	Name      string  `json:"name"`
	Location  *string `json:"location"`
	Paired    bool    `json:"paired"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
