package entity

// Domain-level list filters. Empty fields match everything; Search is a
// case-insensitive substring match over the fields named on each filter.

type PatientFilter struct {
	Search string // name or contact
}

type DoctorFilter struct {
	Search        string // name or specialization
	AvailableOnly bool
}

type AppointmentFilter struct {
	Status AppointmentStatus
}

type BillFilter struct {
	Status BillStatus
}

type MedicineFilter struct {
	Category string
	Search   string // name, category or manufacturer
}

type LabReportFilter struct {
	Status   LabReportStatus
	TestType string
	Search   string // patient name, test name or test type
}
