package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Patient sex values.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Patient status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// BloodTypes lists the recognized blood type values.
var BloodTypes = []string{"A", "B", "AB", "O"}

// Patient model
type Patient struct {
	ID                    int64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name                  string         `gorm:"column:name;not null;index" json:"name"`
	NIK                   string         `gorm:"column:nik" json:"nik"`
	Phone                 string         `gorm:"column:phone;not null" json:"phone"`
	Address               string         `gorm:"column:address;not null" json:"address"`
	BirthDate             time.Time      `gorm:"column:birth_date;type:date;not null" json:"birth_date"`
	Sex                   string         `gorm:"column:sex;check:sex IN ('male', 'female');not null" json:"sex"`
	BloodType             *string        `gorm:"column:blood_type;check:blood_type IN ('A', 'B', 'AB', 'O')" json:"blood_type"`
	Status                string         `gorm:"column:status;check:status IN ('active', 'inactive');not null" json:"status"`
	MedicalRecordNumber   string         `gorm:"column:medical_record_number;uniqueIndex;not null" json:"medical_record_number"`
	Email                 *string        `gorm:"column:email;uniqueIndex" json:"email"`
	Allergies             *string        `gorm:"column:allergies" json:"allergies"`
	EmergencyContactName  *string        `gorm:"column:emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone *string        `gorm:"column:emergency_contact_phone" json:"emergency_contact_phone"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Patient) TableName() string {
	return "pasiens"
}

// AgeAt reports the patient's age in calendar years at the given time.
// Only the year component is compared, matching how the dashboard buckets ages.
func (p *Patient) AgeAt(t time.Time) int {
	return t.Year() - p.BirthDate.Year()
}

// LocationToken derives the location bucket from the address: the substring
// after the last comma, trimmed. An address without a comma is its own token.
// Returns "" for blank addresses.
func (p *Patient) LocationToken() string {
	addr := strings.TrimSpace(p.Address)
	if addr == "" {
		return ""
	}
	if i := strings.LastIndex(addr, ","); i >= 0 {
		addr = addr[i+1:]
	}
	return strings.TrimSpace(addr)
}

// ProfileComplete reports whether the record carries an email, a blood type
// and an address.
func (p *Patient) ProfileComplete() bool {
	if p.Email == nil || *p.Email == "" {
		return false
	}
	if p.BloodType == nil || *p.BloodType == "" {
		return false
	}
	return strings.TrimSpace(p.Address) != ""
}
