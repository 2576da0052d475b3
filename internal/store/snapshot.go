package store

import "github.com/guardianhealth/medmaintain/internal/model"

// Snapshot is a point-in-time copy of everything the store owns. It is the
// unit of durability (persistence adapter) and of backup export.
type Snapshot struct {
	Equipments  []*model.Equipment       `json:"equipments"`
	Occurrences []*model.Occurrence      `json:"occurrences"`
	Alerts      []*model.Alert           `json:"alerts"`
	Tasks       []*model.MaintenanceTask `json:"tasks"`
	Settings    model.SystemSettings     `json:"settings"`
	Users       []*model.User            `json:"users"`
}

func cloneEquipment(e *model.Equipment) *model.Equipment {
	cp := *e
	return &cp
}

func cloneOccurrence(o *model.Occurrence) *model.Occurrence {
	cp := *o
	cp.PartsReplaced = append([]string(nil), o.PartsReplaced...)
	return &cp
}

func cloneAlert(a *model.Alert) *model.Alert {
	cp := *a
	return &cp
}

func cloneTask(t *model.MaintenanceTask) *model.MaintenanceTask {
	cp := *t
	return &cp
}

func cloneUser(u *model.User) *model.User {
	cp := *u
	return &cp
}
