package models

// CreatePatientRequest is the payload accepted when registering a patient.
// BirthDate uses the 2006-01-02 layout.
type CreatePatientRequest struct {
	Name                  string  `json:"name"`
	NIK                   string  `json:"nik"`
	Phone                 string  `json:"phone"`
	Address               string  `json:"address"`
	BirthDate             string  `json:"birth_date"`
	Sex                   string  `json:"sex"`
	BloodType             *string `json:"blood_type"`
	Status                string  `json:"status"`
	MedicalRecordNumber   string  `json:"medical_record_number"`
	Email                 *string `json:"email"`
	Allergies             *string `json:"allergies"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
}

// UpdatePatientRequest is the partial-update payload. Nil fields are left
// untouched on the stored record.
type UpdatePatientRequest struct {
	Name                  *string `json:"name"`
	NIK                   *string `json:"nik"`
	Phone                 *string `json:"phone"`
	Address               *string `json:"address"`
	BirthDate             *string `json:"birth_date"`
	Sex                   *string `json:"sex"`
	BloodType             *string `json:"blood_type"`
	Status                *string `json:"status"`
	MedicalRecordNumber   *string `json:"medical_record_number"`
	Email                 *string `json:"email"`
	Allergies             *string `json:"allergies"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
}

// CreateDoctorRequest is the payload for creating a doctor account.
type CreateDoctorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateDoctorRequest is the partial-update payload for a doctor account.
type UpdateDoctorRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
