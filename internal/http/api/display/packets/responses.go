package packets

// RESPONSES FOR /api/display/*

type RegisterPairingCodeResponse struct {
	DeviceID string `json:"device_id"`
}

// PrayerTimesResponse flattens the day's timetable to "HH:MM" strings in
// the mosque's local timezone.
type PrayerTimesResponse struct {
	Day     string `json:"day"`
	Imsak   string `json:"imsak"`
	Subuh   string `json:"subuh"`
	Syuruq  string `json:"syuruq"`
	Dzuhur  string `json:"dzuhur"`
	Ashar   string `json:"ashar"`
	Maghrib string `json:"maghrib"`
	Isya    string `json:"isya"`
}
