package model

// SystemSettings is the externally supplied configuration. The sync core
// treats the cloud fields as opaque; absence of a valid URL/key disables
// remote upload but local marker bookkeeping still works.
type SystemSettings struct {
	HospitalName         string `json:"hospitalName"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	EmailReportsEnabled  bool   `json:"emailReportsEnabled"`
	HighContrastMode     bool   `json:"highContrastMode"`
	CloudAPIURL          string `json:"cloudApiUrl"`
	CloudAPIKey          string `json:"cloudApiKey"`
	CloudEnabled         bool   `json:"isCloudEnabled"`
}

// CloudConfigured reports whether a remote endpoint and key are both set.
func (s SystemSettings) CloudConfigured() bool {
	return s.CloudAPIURL != "" && s.CloudAPIKey != ""
}

// CloudSyncActive reports whether remote upload should be attempted.
func (s SystemSettings) CloudSyncActive() bool {
	return s.CloudEnabled && s.CloudConfigured()
}

// DefaultSettings returns the factory settings used on first run and after
// a system reset.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		HospitalName:         "Guardian Smart Hospital",
		NotificationsEnabled: true,
		CloudEnabled:         true,
	}
}
