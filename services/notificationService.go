package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
)

// NotificationInputs are the four scalar aggregates the advisory rules read.
type NotificationInputs struct {
	ActivePatients     int64
	Doctors            int64
	IncompleteProfiles int64
	NewPatientsToday   int64
}

// NotificationService derives advisory notifications from current aggregate
// counts. Nothing is persisted; every request recomputes the list.
type NotificationService struct {
	patients repositories.PatientRepository
	users    repositories.UserRepository

	now func() time.Time
}

func NewNotificationService(patients repositories.PatientRepository, users repositories.UserRepository) *NotificationService {
	return &NotificationService{
		patients: patients,
		users:    users,
		now:      time.Now,
	}
}

// Notifications gathers the rule inputs from the stores and derives the
// advisory list.
func (s *NotificationService) Notifications(ctx context.Context) ([]models.Notification, error) {
	var in NotificationInputs
	var err error

	if in.ActivePatients, err = s.patients.CountByStatus(ctx, models.StatusActive); err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	if in.Doctors, err = s.users.CountByRole(ctx, models.RoleDoctor); err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	if in.IncompleteProfiles, err = s.patients.CountIncompleteProfiles(ctx); err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	today := startOfDay(s.now())
	if in.NewPatientsToday, err = s.patients.CountCreatedBetween(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}

	return DeriveNotifications(s.now(), in), nil
}

// DeriveNotifications evaluates the threshold rules over the given inputs.
// It is a pure function: same inputs, same advisories.
//
// Rules fire in a fixed generation order (profile completeness, patient load,
// daily registrations) and the result is stable-sorted by priority descending,
// so equal priorities keep generation order.
func DeriveNotifications(now time.Time, in NotificationInputs) []models.Notification {
	notifications := []models.Notification{}

	if in.IncompleteProfiles > 0 {
		notifications = append(notifications, models.Notification{
			ID:         "incomplete_profiles",
			Type:       "info",
			Title:      "Incomplete Profiles",
			Message:    fmt.Sprintf("%d patients have incomplete profiles", in.IncompleteProfiles),
			ActionText: "Complete Data",
			ActionURL:  "/pasiens?filter=incomplete",
			CreatedAt:  now,
			Priority:   models.PriorityLow,
		})
	}

	// A doctor count of zero suppresses the load rule rather than dividing
	// by zero.
	var perDoctor float64
	if in.Doctors > 0 {
		perDoctor = float64(in.ActivePatients) / float64(in.Doctors)
	}
	if perDoctor > 50 {
		notifications = append(notifications, models.Notification{
			ID:         "high_patient_load",
			Type:       "warning",
			Title:      "High Patient Load",
			Message:    fmt.Sprintf("An average of %d patients per doctor. Consider adding doctors.", int64(math.Round(perDoctor))),
			ActionText: "View Statistics",
			ActionURL:  "/dashboard/statistics",
			CreatedAt:  now,
			Priority:   models.PriorityHigh,
		})
	}

	if in.NewPatientsToday > 5 {
		notifications = append(notifications, models.Notification{
			ID:         "high_registrations_today",
			Type:       "success",
			Title:      "High Registrations Today",
			Message:    fmt.Sprintf("%d new patients registered today", in.NewPatientsToday),
			ActionText: "View New Patients",
			ActionURL:  "/pasiens?filter=today",
			CreatedAt:  now,
			Priority:   models.PriorityMedium,
		})
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return models.PriorityRank(notifications[i].Priority) > models.PriorityRank(notifications[j].Priority)
	})
	return notifications
}
