package services

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/yogimardilah/klinik-api/database"
	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
)

// StatsService assembles the dashboard and patient statistics snapshots. Every
// snapshot is a fan-out of independent read-only store queries; nothing is
// cached, and any query failure fails the whole snapshot.
type StatsService struct {
	patients repositories.PatientRepository
	users    repositories.UserRepository

	now       func() time.Time
	ping      func(ctx context.Context) error
	startedAt time.Time
}

func NewStatsService(patients repositories.PatientRepository, users repositories.UserRepository) *StatsService {
	return &StatsService{
		patients:  patients,
		users:     users,
		now:       time.Now,
		ping:      database.Ping,
		startedAt: time.Now(),
	}
}

// DashboardStats computes the full dashboard snapshot.
func (s *StatsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.dashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve dashboard statistics: %w", err)
	}
	return stats, nil
}

func (s *StatsService) dashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now()
	stats := &models.DashboardStats{}
	var err error

	if stats.TotalPatients, err = s.patients.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalDoctors, err = s.users.CountByRole(ctx, models.RoleDoctor); err != nil {
		return nil, err
	}
	if stats.TotalNurses, err = s.users.CountByRole(ctx, models.RoleNurse); err != nil {
		return nil, err
	}
	if stats.TotalStaff, err = s.users.CountByRole(ctx, models.RoleStaff); err != nil {
		return nil, err
	}
	if stats.ActivePatients, err = s.patients.CountByStatus(ctx, models.StatusActive); err != nil {
		return nil, err
	}
	if stats.InactivePatients, err = s.patients.CountByStatus(ctx, models.StatusInactive); err != nil {
		return nil, err
	}
	if stats.MalePatients, err = s.patients.CountBySex(ctx, models.SexMale); err != nil {
		return nil, err
	}
	if stats.FemalePatients, err = s.patients.CountBySex(ctx, models.SexFemale); err != nil {
		return nil, err
	}

	today := startOfDay(now)
	if stats.NewPatientsToday, err = s.patients.CountCreatedBetween(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	week := startOfWeek(now)
	if stats.NewPatientsThisWeek, err = s.patients.CountCreatedBetween(ctx, week, week.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.NewPatientsThisMonth, err = s.patients.CountCreatedBetween(ctx, month, month.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}

	if stats.MonthlyRegistrations, err = s.monthlyRegistrations(ctx, now.Year()); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = s.weeklyActivity(ctx, now); err != nil {
		return nil, err
	}

	active, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.AgeGroups = ageGroups(active, now)
	stats.BloodTypeDistribution = bloodTypeDistribution(active)
	stats.TopLocations = topLocations(active, 10)

	stats.SystemHealth = s.systemHealth(ctx, now, stats.TotalPatients)

	return stats, nil
}

// PatientStatistics computes the patients-scoped statistics snapshot.
func (s *StatsService) PatientStatistics(ctx context.Context) (*models.PatientStats, error) {
	stats, err := s.patientStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve patient statistics: %w", err)
	}
	return stats, nil
}

func (s *StatsService) patientStatistics(ctx context.Context) (*models.PatientStats, error) {
	now := s.now()
	stats := &models.PatientStats{}
	var err error

	if stats.TotalPatients, err = s.patients.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActivePatients, err = s.patients.CountByStatus(ctx, models.StatusActive); err != nil {
		return nil, err
	}
	if stats.InactivePatients, err = s.patients.CountByStatus(ctx, models.StatusInactive); err != nil {
		return nil, err
	}
	if stats.MalePatients, err = s.patients.CountBySex(ctx, models.SexMale); err != nil {
		return nil, err
	}
	if stats.FemalePatients, err = s.patients.CountBySex(ctx, models.SexFemale); err != nil {
		return nil, err
	}

	today := startOfDay(now)
	if stats.PatientsToday, err = s.patients.CountCreatedBetween(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	week := startOfWeek(now)
	if stats.PatientsThisWeek, err = s.patients.CountCreatedBetween(ctx, week, week.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.PatientsThisMonth, err = s.patients.CountCreatedBetween(ctx, month, month.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}

	active, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.BloodTypeDistribution = bloodTypeDistribution(active)

	return stats, nil
}

// RecentActivities merges the latest patient and account registrations into a
// single feed, newest first, capped at 20 entries.
func (s *StatsService) RecentActivities(ctx context.Context) ([]models.Activity, error) {
	patients, err := s.patients.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent activities: %w", err)
	}
	users, err := s.users.ListRecent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent activities: %w", err)
	}

	activities := make([]models.Activity, 0, len(patients)+len(users))
	for i := range patients {
		p := &patients[i]
		activities = append(activities, models.Activity{
			ID:          fmt.Sprintf("patient_%d", p.ID),
			Type:        "patient_registration",
			Title:       "New Patient Registration",
			Description: fmt.Sprintf("Patient %s has been registered", p.Name),
			Patient: map[string]interface{}{
				"id":                    p.ID,
				"name":                  p.Name,
				"medical_record_number": p.MedicalRecordNumber,
			},
			CreatedAt: p.CreatedAt,
		})
	}
	for i := range users {
		u := &users[i]
		activities = append(activities, models.Activity{
			ID:          fmt.Sprintf("user_%d", u.ID),
			Type:        "user_registration",
			Title:       "New User Registered",
			Description: fmt.Sprintf("User %s (%s) has been registered", u.Name, u.Role),
			User: map[string]interface{}{
				"id":   u.ID,
				"name": u.Name,
				"role": u.Role,
			},
			CreatedAt: u.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if len(activities) > 20 {
		activities = activities[:20]
	}
	return activities, nil
}

func (s *StatsService) monthlyRegistrations(ctx context.Context, year int) ([]models.MonthlyRegistration, error) {
	monthly := make([]models.MonthlyRegistration, 0, 12)
	for m := time.January; m <= time.December; m++ {
		count, err := s.patients.CountCreatedInMonth(ctx, year, m)
		if err != nil {
			return nil, err
		}
		monthly = append(monthly, models.MonthlyRegistration{
			Month:     int(m),
			MonthName: m.String(),
			Count:     count,
		})
	}
	return monthly, nil
}

// weeklyActivity returns the trailing 7 days of registration counts, oldest
// first, ending with today.
func (s *StatsService) weeklyActivity(ctx context.Context, now time.Time) ([]models.DayActivity, error) {
	days := make([]models.DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfDay(now.AddDate(0, 0, -i))
		count, err := s.patients.CountCreatedBetween(ctx, day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		days = append(days, models.DayActivity{
			Date:    day.Format("2006-01-02"),
			DayName: day.Weekday().String(),
			Count:   count,
		})
	}
	return days, nil
}

func (s *StatsService) systemHealth(ctx context.Context, now time.Time, totalPatients int64) models.SystemHealth {
	health := models.SystemHealth{DatabaseStatus: "healthy"}
	if err := s.ping(ctx); err != nil {
		health.DatabaseStatus = "unhealthy"
	}

	totalUsers, err := s.users.Count(ctx)
	if err == nil {
		health.TotalRecords = totalPatients + totalUsers
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	health.HeapInUse = mem.HeapInuse
	health.Goroutines = runtime.NumGoroutine()
	health.Uptime = now.Sub(s.startedAt).Truncate(time.Second).String()

	return health
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek truncates t to the most recent Monday at midnight.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// ageGroups partitions patients into the four reporting buckets by calendar
// year age: under 18, 18-30, 31-50, over 50. The boundaries are inclusive on
// the middle buckets, so the four buckets cover every age exactly once.
func ageGroups(patients []models.Patient, now time.Time) []models.AgeGroup {
	groups := []models.AgeGroup{
		{Label: "Children (< 18)"},
		{Label: "Young Adults (18-30)"},
		{Label: "Adults (31-50)"},
		{Label: "Seniors (> 50)"},
	}
	for i := range patients {
		age := patients[i].AgeAt(now)
		switch {
		case age < 18:
			groups[0].Count++
		case age <= 30:
			groups[1].Count++
		case age <= 50:
			groups[2].Count++
		default:
			groups[3].Count++
		}
	}
	return groups
}

// bloodTypeDistribution counts patients per known blood type. Patients
// without a blood type are excluded.
func bloodTypeDistribution(patients []models.Patient) map[string]int64 {
	dist := make(map[string]int64)
	for i := range patients {
		bt := patients[i].BloodType
		if bt == nil || *bt == "" {
			continue
		}
		dist[*bt]++
	}
	return dist
}

// topLocations groups patients by the location token of their address and
// returns up to limit buckets ordered by descending count. Ties break
// alphabetically so the ordering is deterministic.
func topLocations(patients []models.Patient, limit int) []models.LocationStat {
	counts := make(map[string]int64)
	for i := range patients {
		token := patients[i].LocationToken()
		if token == "" {
			continue
		}
		counts[token]++
	}

	locations := make([]models.LocationStat, 0, len(counts))
	for loc, count := range counts {
		locations = append(locations, models.LocationStat{Location: loc, Count: count})
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Count != locations[j].Count {
			return locations[i].Count > locations[j].Count
		}
		return locations[i].Location < locations[j].Location
	})
	if len(locations) > limit {
		locations = locations[:limit]
	}
	return locations
}
