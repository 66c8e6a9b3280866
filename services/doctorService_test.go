package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yogimardilah/klinik-api/models"
)

func TestDoctorDeleteRevokesSessionsBeforeRemoval(t *testing.T) {
	users := newMemUserRepo(
		models.User{Name: "Dr. Ana", Email: "ana@klinik.com", Role: models.RoleDoctor},
	)
	sessions := newMemSessionStore(users.events)
	sessions.live[1] = true

	svc := NewDoctorService(users, sessions)
	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Session revocation must land before the row is removed so no usable
	// token survives the deletion.
	want := []string{"revoke", "delete"}
	if len(*users.events) != len(want) {
		t.Fatalf("events = %v, want %v", *users.events, want)
	}
	for i, e := range want {
		if (*users.events)[i] != e {
			t.Fatalf("events = %v, want %v", *users.events, want)
		}
	}

	if live, _ := sessions.Has(context.Background(), 1); live {
		t.Error("session still live after delete")
	}
	if doctor, _ := svc.GetByID(context.Background(), 1); doctor != nil {
		t.Error("doctor still present after delete")
	}
}

func TestDoctorDeleteUnknownID(t *testing.T) {
	users := newMemUserRepo()
	svc := NewDoctorService(users, newMemSessionStore(users.events))

	err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
	if len(*users.events) != 0 {
		t.Errorf("events = %v, want none", *users.events)
	}
}

func TestDoctorDeleteIgnoresOtherRoles(t *testing.T) {
	users := newMemUserRepo(
		models.User{Name: "Admin", Email: "admin@klinik.com", Role: models.RoleAdmin},
	)
	svc := NewDoctorService(users, newMemSessionStore(users.events))

	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound for non-doctor", err)
	}
}

func TestDoctorCreateSetsRoleAndHashesPassword(t *testing.T) {
	users := newMemUserRepo()
	svc := NewDoctorService(users, newMemSessionStore(users.events))

	doctor, err := svc.Create(context.Background(), models.CreateDoctorRequest{
		Name:     "Dr. Budi",
		Email:    "budi@klinik.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if doctor.Role != models.RoleDoctor {
		t.Errorf("Role = %s, want doctor", doctor.Role)
	}
	if doctor.Password == "supersecret" {
		t.Error("password stored in plain text")
	}
	if doctor.EmailVerifiedAt == nil {
		t.Error("EmailVerifiedAt not set")
	}
}

func TestDoctorCreateRejectsDuplicateEmail(t *testing.T) {
	users := newMemUserRepo(
		models.User{Name: "Dr. Ana", Email: "ana@klinik.com", Role: models.RoleDoctor},
	)
	svc := NewDoctorService(users, newMemSessionStore(users.events))

	_, err := svc.Create(context.Background(), models.CreateDoctorRequest{
		Name:     "Impostor",
		Email:    "ana@klinik.com",
		Password: "supersecret",
	})
	if err == nil {
		t.Fatal("Create() accepted a duplicate email")
	}
}

func TestDoctorCreateValidation(t *testing.T) {
	users := newMemUserRepo()
	svc := NewDoctorService(users, newMemSessionStore(users.events))

	cases := []models.CreateDoctorRequest{
		{Name: "", Email: "x@klinik.com", Password: "supersecret"},
		{Name: "Dr. X", Email: "not-an-email", Password: "supersecret"},
		{Name: "Dr. X", Email: "x@klinik.com", Password: "short"},
	}
	for _, req := range cases {
		if _, err := svc.Create(context.Background(), req); err == nil {
			t.Errorf("Create(%+v) accepted an invalid payload", req)
		}
	}
}
