package report

// Risk labels, kept in Portuguese as shown to clinicians
const (
	RiskHigh     = "Alto"
	RiskModerate = "Moderado"
	RiskLow      = "Baixo"
)

// StatsResponse summarizes a psychologist's practice
type StatsResponse struct {
	ActivePatients    int         `json:"active_patients"`
	TotalSessions     int         `json:"total_sessions"`
	CompletedSessions int         `json:"completed_sessions"`
	CanceledSessions  int         `json:"canceled_sessions"`
	ScheduledSessions int         `json:"scheduled_sessions"`
	AttendanceRate    string      `json:"attendance_rate"`
	RiskAlerts        []RiskAlert `json:"risk_alerts"`
}

// RiskAlert is one patient flagged at elevated risk
type RiskAlert struct {
	PatientID        string  `json:"patient_id"`
	PatientName      string  `json:"patient_name"`
	Risk             string  `json:"risk"`
	TotalSessions    int     `json:"total_sessions"`
	CanceledSessions int     `json:"canceled_sessions"`
	CancelRate       float64 `json:"cancel_rate"`
}

// RiskAnalysisResponse carries the per-patient risk labels plus the
// distribution counts.
type RiskAnalysisResponse struct {
	TotalPatients int         `json:"total_patients"`
	HighRisk      int         `json:"high_risk"`
	ModerateRisk  int         `json:"moderate_risk"`
	LowRisk       int         `json:"low_risk"`
	Patients      []RiskAlert `json:"patients"`
}
