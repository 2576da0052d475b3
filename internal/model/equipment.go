package model

type EquipmentCategory string

const (
	CategoryDiagnostic  EquipmentCategory = "Diagnostic"
	CategoryLifeSupport EquipmentCategory = "Life Support"
	CategoryLaboratory  EquipmentCategory = "Laboratory"
	CategoryMonitoring  EquipmentCategory = "Monitoring"
	CategoryTherapeutic EquipmentCategory = "Therapeutic"
)

type RiskClass string

const (
	RiskClassI   RiskClass = "Class I (Low Risk)"
	RiskClassII  RiskClass = "Class II (Medium Risk)"
	RiskClassIII RiskClass = "Class III (High Risk)"
	RiskClassIV  RiskClass = "Class IV (Maximum Risk)"
)

type EquipmentStatus string

const (
	EquipmentOperational  EquipmentStatus = "Operational"
	EquipmentMaintenance  EquipmentStatus = "Under Maintenance"
	EquipmentOutOfService EquipmentStatus = "Out of Service"
)

// Equipment is a tracked biomedical asset.
type Equipment struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Category        EquipmentCategory `json:"category"`
	RiskClass       RiskClass         `json:"riskClass"`
	SerialNumber    string            `json:"serialNumber"`
	Location        string            `json:"location"`
	AcquisitionDate string            `json:"acquisitionDate"`
	Manufacturer    string            `json:"manufacturer"`
	LastMaintenance string            `json:"lastMaintenance,omitempty"`
	NextMaintenance string            `json:"nextMaintenance,omitempty"`
	Status          EquipmentStatus   `json:"status"`
	UsageHours      int               `json:"usageHours"`
	SyncStatus      SyncMarker        `json:"syncStatus"`
}

func (e *Equipment) RecordID() string { return e.ID }
func (e *Equipment) Marker() SyncMarker { return e.SyncStatus }
func (e *Equipment) SetMarker(m SyncMarker) { e.SyncStatus = m }
