package model

type AlertStatus string

const (
	AlertActive   AlertStatus = "Active"
	AlertResolved AlertStatus = "Resolved"
)

type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "High"
	SeverityMedium AlertSeverity = "Medium"
	SeverityLow    AlertSeverity = "Low"
)

// Alert is a system-raised maintenance warning.
type Alert struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Severity    AlertSeverity `json:"severity"`
	Status      AlertStatus   `json:"status"`
	SyncStatus  SyncMarker    `json:"syncStatus"`
}

func (a *Alert) RecordID() string { return a.ID }
func (a *Alert) Marker() SyncMarker { return a.SyncStatus }
func (a *Alert) SetMarker(m SyncMarker) { a.SyncStatus = m }
