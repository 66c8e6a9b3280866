package models

import "time"

// MonthlyRegistration is one month of patient registrations in the current year.
type MonthlyRegistration struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Count     int64  `json:"count"`
}

// AgeGroup is one bucket of the active-patient age distribution.
type AgeGroup struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// LocationStat is one location bucket derived from patient addresses.
type LocationStat struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// DayActivity is one day of the trailing-week registration series.
type DayActivity struct {
	Date    string `json:"date"`
	DayName string `json:"day_name"`
	Count   int64  `json:"count"`
}

// SystemHealth carries measured runtime health values. All fields are real
// measurements; there are no placeholder values.
type SystemHealth struct {
	DatabaseStatus string `json:"database_status"`
	TotalRecords   int64  `json:"total_records"`
	Uptime         string `json:"uptime"`
	HeapInUse      uint64 `json:"heap_in_use_bytes"`
	Goroutines     int    `json:"goroutines"`
}

// DashboardStats is the full dashboard snapshot. It is recomputed on every
// request and never persisted.
type DashboardStats struct {
	TotalPatients         int64                 `json:"total_patients"`
	TotalDoctors          int64                 `json:"total_doctors"`
	TotalNurses           int64                 `json:"total_nurses"`
	TotalStaff            int64                 `json:"total_staff"`
	ActivePatients        int64                 `json:"active_patients"`
	InactivePatients      int64                 `json:"inactive_patients"`
	NewPatientsToday      int64                 `json:"new_patients_today"`
	NewPatientsThisWeek   int64                 `json:"new_patients_this_week"`
	NewPatientsThisMonth  int64                 `json:"new_patients_this_month"`
	MalePatients          int64                 `json:"male_patients"`
	FemalePatients        int64                 `json:"female_patients"`
	MonthlyRegistrations  []MonthlyRegistration `json:"monthly_registrations"`
	AgeGroups             []AgeGroup            `json:"age_groups"`
	RecentActivity        []DayActivity         `json:"recent_activity"`
	TopLocations          []LocationStat        `json:"top_locations"`
	BloodTypeDistribution map[string]int64      `json:"blood_type_distribution"`
	SystemHealth          SystemHealth          `json:"system_health"`
}

// PatientStats is the patients-scoped statistics snapshot.
type PatientStats struct {
	TotalPatients         int64            `json:"total_patients"`
	ActivePatients        int64            `json:"active_patients"`
	InactivePatients      int64            `json:"inactive_patients"`
	MalePatients          int64            `json:"male_patients"`
	FemalePatients        int64            `json:"female_patients"`
	PatientsToday         int64            `json:"patients_today"`
	PatientsThisWeek      int64            `json:"patients_this_week"`
	PatientsThisMonth     int64            `json:"patients_this_month"`
	BloodTypeDistribution map[string]int64 `json:"blood_type_distribution"`
}

// Activity is one entry in the recent-activity feed.
type Activity struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Patient     interface{} `json:"patient,omitempty"`
	User        interface{} `json:"user,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification is a derived advisory. Notifications are never persisted;
// they are recomputed from current aggregate counts on every request.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	ActionText string    `json:"action_text"`
	ActionURL  string    `json:"action_url"`
	CreatedAt  time.Time `json:"created_at"`
	Priority   string    `json:"priority"`
}

// PriorityRank maps a notification priority to its sort weight.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}
