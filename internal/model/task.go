package model

type MaintenanceType string

const (
	MaintenancePreventive  MaintenanceType = "Preventive"
	MaintenanceCorrective  MaintenanceType = "Corrective"
	MaintenanceCalibration MaintenanceType = "Calibration"
)

type MaintenanceStatus string

const (
	TaskScheduled  MaintenanceStatus = "Scheduled"
	TaskInProgress MaintenanceStatus = "In Progress"
	TaskCompleted  MaintenanceStatus = "Completed"
	TaskOverdue    MaintenanceStatus = "Overdue"
)

// MaintenanceTask is a scheduled work order for an equipment.
type MaintenanceTask struct {
	ID            string            `json:"id"`
	EquipmentID   string            `json:"equipmentId"`
	EquipmentName string            `json:"equipmentName"`
	Type          MaintenanceType   `json:"type"`
	Date          string            `json:"date"`
	Status        MaintenanceStatus `json:"status"`
	Technician    string            `json:"technician"`
	Protocol      string            `json:"protocol"`
	Notes         string            `json:"notes,omitempty"`
	SyncStatus    SyncMarker        `json:"syncStatus"`
}

func (t *MaintenanceTask) RecordID() string { return t.ID }
func (t *MaintenanceTask) Marker() SyncMarker { return t.SyncStatus }
func (t *MaintenanceTask) SetMarker(m SyncMarker) { t.SyncStatus = m }
