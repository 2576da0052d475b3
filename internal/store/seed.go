package store

import "github.com/guardianhealth/medmaintain/internal/model"

// SeedSnapshot returns the first-run dataset used when no durable snapshot
// exists yet. Seed records are already acknowledged (Synced) so a fresh
// install doesn't immediately queue uploads.
func SeedSnapshot() *Snapshot {
	return &Snapshot{
		Equipments: []*model.Equipment{
			{
				ID:              "EQ-001",
				Name:            "Savina 300 Ventilator",
				Category:        model.CategoryLifeSupport,
				RiskClass:       model.RiskClassIII,
				SerialNumber:    "SN987654",
				Location:        "Adult ICU - Bed 05",
				AcquisitionDate: "2022-05-15",
				Manufacturer:    "Dräger",
				NextMaintenance: "2024-05-10",
				Status:          model.EquipmentOperational,
				UsageHours:      5200,
				SyncStatus:      model.MarkerSynced,
			},
			{
				ID:              "EQ-002",
				Name:            "B450 Patient Monitor",
				Category:        model.CategoryMonitoring,
				RiskClass:       model.RiskClassII,
				SerialNumber:    "SN123987",
				Location:        "Ward 2 - Room 210",
				AcquisitionDate: "2021-11-02",
				Manufacturer:    "GE Healthcare",
				Status:          model.EquipmentMaintenance,
				UsageHours:      10400,
				SyncStatus:      model.MarkerSynced,
			},
		},
		Occurrences: []*model.Occurrence{
			{
				ID:            "CH-0001",
				EquipmentID:   "EQ-002",
				EquipmentName: "B450 Patient Monitor",
				Date:          "2024-05-20",
				Technician:    "Amanda Costa",
				Description:   "Intermittent SpO2 reading dropouts reported by nursing staff.",
				PartsReplaced: []string{},
				Status:        model.OccurrenceToDo,
				IsCritical:    true,
				DowntimeHours: 4,
				SyncStatus:    model.MarkerSynced,
			},
		},
		Alerts: []*model.Alert{
			{
				ID:          "AL-0001",
				Title:       "Preventive maintenance overdue",
				Description: "Savina 300 Ventilator (EQ-001) passed its scheduled maintenance date.",
				Date:        "2024-05-11",
				Severity:    model.SeverityHigh,
				Status:      model.AlertActive,
				SyncStatus:  model.MarkerSynced,
			},
		},
		Tasks: []*model.MaintenanceTask{
			{
				ID:            "OS-101",
				EquipmentID:   "EQ-001",
				EquipmentName: "Savina 300 Ventilator",
				Type:          model.MaintenancePreventive,
				Date:          "2024-06-15",
				Status:        model.TaskScheduled,
				Technician:    "Rodrigo Nunes",
				Protocol:      "IEC 62353",
				SyncStatus:    model.MarkerSynced,
			},
			{
				ID:            "OS-102",
				EquipmentID:   "EQ-002",
				EquipmentName: "B450 Patient Monitor",
				Type:          model.MaintenanceCorrective,
				Date:          "2024-05-25",
				Status:        model.TaskInProgress,
				Technician:    "Amanda Costa",
				Protocol:      "GE factory protocol",
				SyncStatus:    model.MarkerSynced,
			},
		},
		Settings: model.DefaultSettings(),
		Users:    model.DefaultUsers(),
	}
}
