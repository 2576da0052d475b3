package model

// OccurrenceStatus follows a fixed ladder:
// Reported -> To Do -> Done -> Closed. Closed is terminal.
type OccurrenceStatus string

const (
	OccurrenceReported OccurrenceStatus = "Reported"
	OccurrenceToDo     OccurrenceStatus = "To Do"
	OccurrenceDone     OccurrenceStatus = "Done"
	OccurrenceClosed   OccurrenceStatus = "Closed"
)

// Next returns the next status in the ladder. Closed stays Closed.
func (s OccurrenceStatus) Next() OccurrenceStatus {
	switch s {
	case OccurrenceReported:
		return OccurrenceToDo
	case OccurrenceToDo:
		return OccurrenceDone
	case OccurrenceDone:
		return OccurrenceClosed
	default:
		return OccurrenceClosed
	}
}

// Occurrence is a reported incident against an equipment.
type Occurrence struct {
	ID            string           `json:"id"`
	EquipmentID   string           `json:"equipmentId"`
	EquipmentName string           `json:"equipmentName"`
	Date          string           `json:"date"`
	Technician    string           `json:"technician"`
	Description   string           `json:"description"`
	PartsReplaced []string         `json:"partsReplaced"`
	Status        OccurrenceStatus `json:"status"`
	IsCritical    bool             `json:"isCritical"`
	Cost          float64          `json:"cost"`
	DowntimeHours float64          `json:"downtimeHours"`
	SyncStatus    SyncMarker       `json:"syncStatus"`
}

func (o *Occurrence) RecordID() string { return o.ID }
func (o *Occurrence) Marker() SyncMarker { return o.SyncStatus }
func (o *Occurrence) SetMarker(m SyncMarker) { o.SyncStatus = m }
