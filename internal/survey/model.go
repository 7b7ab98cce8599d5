package survey

import "time"

// Survey is one self-reported health check-in.
type Survey struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Age             string        `json:"age,omitempty"`
	Height          string        `json:"height,omitempty"`
	Weight          string        `json:"weight,omitempty"`
	BloodType       string        `json:"bloodType,omitempty"`
	BloodPressure   BloodPressure `json:"bloodPressure"`
	CurrentSymptoms string        `json:"currentSymptoms,omitempty"`
	Medications     string        `json:"medications,omitempty"`
	CreatedAt       time.Time     `json:"date"`
}

// BloodPressure is a systolic/diastolic reading, stored as reported.
type BloodPressure struct {
	Systolic  string `json:"systolic,omitempty"`
	Diastolic string `json:"diastolic,omitempty"`
}
