package model

// Engine-wide defaults, applied once by Normalize. Consumers must never
// fill defaults inline.
const (
	DefaultTimezone            = "Asia/Jakarta"
	DefaultCalculationMethod   = "kemenag"
	DefaultIqamahWaitMinutes   = 10
	DefaultSholatBlankMinutes  = 10
	DefaultAdzanWindowMinutes  = 4
	DefaultImsakOffsetMinutes  = 10
	DefaultReminderLeadSeconds = 120
	DefaultSchedulePlayMinutes = 15

	DefaultNotifyTemplate      = "Waktu {sholat} telah tiba pukul {jam}. Mari tunaikan sholat berjamaah."
	DefaultImsakNotifyTemplate = "Waktu Imsak pukul {jam}. Selamat menunaikan ibadah puasa."
)

// Normalize hydrates every optional field of a config loaded from storage
// so the rest of the engine can consume a fully-populated structure. It is
// idempotent and safe on configs written by older dashboard versions.
func Normalize(c *MosqueConfig) *MosqueConfig {
	if c == nil {
		return nil
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.CalculationMethod == "" {
		c.CalculationMethod = DefaultCalculationMethod
	}
	if c.Adjustments == nil {
		c.Adjustments = map[string]int{}
	}
	if c.Iqamah.WaitMinutes == nil {
		c.Iqamah.WaitMinutes = map[string]int{}
	}
	if c.Iqamah.SholatBlankMinutes <= 0 {
		c.Iqamah.SholatBlankMinutes = DefaultSholatBlankMinutes
	}
	if c.Iqamah.ReminderLeadSeconds <= 0 {
		c.Iqamah.ReminderLeadSeconds = DefaultReminderLeadSeconds
	}
	if c.Adzan.WindowMinutes <= 0 {
		c.Adzan.WindowMinutes = DefaultAdzanWindowMinutes
	}
	if c.Ramadhan.ImsakOffsetMinutes <= 0 {
		c.Ramadhan.ImsakOffsetMinutes = DefaultImsakOffsetMinutes
	}
	if c.Wabot.Template == "" {
		c.Wabot.Template = DefaultNotifyTemplate
	}
	if c.Wabot.ImsakTemplate == "" {
		c.Wabot.ImsakTemplate = DefaultImsakNotifyTemplate
	}
	if c.Simulation != nil && !c.Simulation.IsSimulating {
		c.Simulation = nil
	}
	return c
}
