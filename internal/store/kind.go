package store

// Kind identifies one of the four syncable collections. The value doubles
// as the remote collection resource name.
type Kind string

const (
	KindEquipments  Kind = "equipments"
	KindOccurrences Kind = "occurrences"
	KindAlerts      Kind = "alerts"
	KindTasks       Kind = "tasks"
)

// Kinds returns all collection kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindEquipments, KindOccurrences, KindAlerts, KindTasks}
}
