package auth

import "time"

// User is the identity record stored in the users collection. PasswordHash
// never leaves the server: it is excluded from JSON and every outbound DTO.
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	FullName       string    `bson:"full_name,omitempty" json:"fullName,omitempty"`
	DoctorID       string    `bson:"doctor_id,omitempty" json:"doctorId,omitempty"`
	HospitalName   string    `bson:"hospital_name,omitempty" json:"hospitalName,omitempty"`
	Area           string    `bson:"area,omitempty" json:"area,omitempty"`
	ProfilePicture string    `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// Summary is the user shape returned by register and login.
type Summary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Summary projects the user into the register/login response shape.
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

// Profile is the flattened snake_case shape served by GET /api/profile.
// Unset optional fields serialize as empty strings, not nulls.
type Profile struct {
	FullName       string `json:"full_name"`
	DoctorID       string `json:"doctor_id"`
	Email          string `json:"email"`
	HospitalName   string `json:"hospital_name"`
	Area           string `json:"area"`
	ProfilePicture string `json:"profile_picture"`
}

// Profile projects the user into the external profile shape.
func (u *User) Profile() Profile {
	return Profile{
		FullName:       u.FullName,
		DoctorID:       u.DoctorID,
		Email:          u.Email,
		HospitalName:   u.HospitalName,
		Area:           u.Area,
		ProfilePicture: u.ProfilePicture,
	}
}
