package services

import (
	"context"
	"testing"
	"time"

	"github.com/yogimardilah/klinik-api/models"
)

func TestDeriveNotificationsPriorityOrder(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

	in := NotificationInputs{
		ActivePatients:     120,
		Doctors:            2, // 60 per doctor, above the load threshold
		IncompleteProfiles: 4,
		NewPatientsToday:   8,
	}

	notifications := DeriveNotifications(now, in)
	if len(notifications) != 3 {
		t.Fatalf("got %d notifications, want 3", len(notifications))
	}

	wantOrder := []string{"high_patient_load", "high_registrations_today", "incomplete_profiles"}
	for i, want := range wantOrder {
		if notifications[i].ID != want {
			t.Errorf("notifications[%d].ID = %s, want %s", i, notifications[i].ID, want)
		}
	}

	load := notifications[0]
	if load.Type != "warning" || load.Priority != models.PriorityHigh {
		t.Errorf("load notification = %+v, want warning/high", load)
	}
	if load.Message != "An average of 60 patients per doctor. Consider adding doctors." {
		t.Errorf("load message = %q", load.Message)
	}
}

func TestDeriveNotificationsThresholds(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		in   NotificationInputs
		want []string
	}{
		{
			name: "all quiet",
			in:   NotificationInputs{ActivePatients: 10, Doctors: 2, IncompleteProfiles: 0, NewPatientsToday: 0},
			want: nil,
		},
		{
			name: "exactly at load threshold stays silent",
			in:   NotificationInputs{ActivePatients: 100, Doctors: 2},
			want: nil,
		},
		{
			name: "no doctors suppresses load rule",
			in:   NotificationInputs{ActivePatients: 500, Doctors: 0},
			want: nil,
		},
		{
			name: "exactly five registrations stays silent",
			in:   NotificationInputs{Doctors: 1, NewPatientsToday: 5},
			want: nil,
		},
		{
			name: "six registrations fires",
			in:   NotificationInputs{Doctors: 1, NewPatientsToday: 6},
			want: []string{"high_registrations_today"},
		},
		{
			name: "one incomplete profile fires",
			in:   NotificationInputs{Doctors: 1, IncompleteProfiles: 1},
			want: []string{"incomplete_profiles"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveNotifications(now, tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d notifications %v, want %d", len(got), got, len(tc.want))
			}
			for i, want := range tc.want {
				if got[i].ID != want {
					t.Errorf("notifications[%d].ID = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestDeriveNotificationsIsDeterministic(t *testing.T) {
	now := time.Now()
	in := NotificationInputs{ActivePatients: 200, Doctors: 3, IncompleteProfiles: 2, NewPatientsToday: 7}

	first := DeriveNotifications(now, in)
	second := DeriveNotifications(now, in)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("notifications[%d] differ: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNotificationsGathersInputsFromStores(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	// One active patient without email or blood type: incomplete.
	patients := newMemPatientRepo(
		models.Patient{Name: "Siti", Status: models.StatusActive, Address: "Jl. Melati, Jakarta", CreatedAt: now.Add(-time.Hour)},
	)
	users := newMemUserRepo(
		models.User{Name: "Dr. Ana", Email: "ana@klinik.com", Role: models.RoleDoctor},
	)

	svc := NewNotificationService(patients, users)
	svc.now = func() time.Time { return now }

	notifications, err := svc.Notifications(context.Background())
	if err != nil {
		t.Fatalf("Notifications() error = %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	if notifications[0].ID != "incomplete_profiles" {
		t.Errorf("ID = %s, want incomplete_profiles", notifications[0].ID)
	}
	if notifications[0].Message != "1 patients have incomplete profiles" {
		t.Errorf("message = %q", notifications[0].Message)
	}
}
