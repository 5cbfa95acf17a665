package domain

// TimerTabCount is the number of preset quick-select durations.
const TimerTabCount = 3

// TimerTabs holds the quick-select durations in minutes.
type TimerTabs [TimerTabCount]int

// DefaultTimerTabs is used when no tabs were stored yet.
var DefaultTimerTabs = TimerTabs{40, 60, 90}

// Validate checks every tab against the duration range.
func (t TimerTabs) Validate() error {
	for _, m := range t {
		if err := ValidateMinutes(m); err != nil {
			return err
		}
	}
	return nil
}

// Default returns the middle tab, which is the preselected duration.
func (t TimerTabs) Default() int {
	return t[TimerTabCount/2]
}

// With returns a copy of t with the tab at index replaced.
func (t TimerTabs) With(index, minutes int) (TimerTabs, error) {
	if index < 0 || index >= TimerTabCount {
		return t, ErrInvalidTabIndex
	}
	if err := ValidateMinutes(minutes); err != nil {
		return t, err
	}
	t[index] = minutes
	return t, nil
}

// Settings is the explicit per-device configuration shared by all screens.
type Settings struct {
	SoundEnabled        bool      `json:"sound_enabled"`
	VibrationEnabled    bool      `json:"vibration_enabled"`
	NotificationEnabled bool      `json:"notification_enabled"`
	TimerTabs           TimerTabs `json:"timer_tabs"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:        true,
		VibrationEnabled:    true,
		NotificationEnabled: true,
		TimerTabs:           DefaultTimerTabs,
	}
}

// SettingsPatch carries a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	SoundEnabled        *bool
	VibrationEnabled    *bool
	NotificationEnabled *bool
}

// Apply returns s with the non-nil fields of p applied.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.VibrationEnabled != nil {
		s.VibrationEnabled = *p.VibrationEnabled
	}
	if p.NotificationEnabled != nil {
		s.NotificationEnabled = *p.NotificationEnabled
	}
	return s
}
