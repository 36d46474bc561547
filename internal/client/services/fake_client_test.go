package services

import (
	"context"

	"github.com/respirex/respirex-client/internal/client/models"
)

// fakeClient implements api.Client for unit tests. Preset the *Ret/*Err
// fields; the Last* fields capture arguments for assertions.
type fakeClient struct {
	ProfileRet *models.Profile
	ProfileErr error

	CompleteProfileRet *models.Profile
	CompleteProfileErr error
	LastProfileInput   models.ProfileInput

	PredictRet   *models.TestResult
	PredictErr   error
	LastImage    []byte
	LastFilename string
	LastSymptoms map[string]any
	PredictCalls int

	HistoryRet []models.TestResult
	HistoryErr error

	DashboardRet  *models.Dashboard
	DashboardErr  error
	LastStateFilt string

	ReportRet    []byte
	ReportErr    error
	LastReportID int64

	EmailReportErr error

	StatsRet *models.Stats
	StatsErr error

	AppointmentsRet []models.Appointment
	AppointmentsErr error

	BookRet  *models.Appointment
	BookErr  error
	LastBook models.AppointmentInput

	CancelErr  error
	LastCancel string

	DoctorsRet []models.Doctor
	DoctorsErr error
}

func (f *fakeClient) Profile(ctx context.Context) (*models.Profile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) CompleteProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	f.LastProfileInput = in
	return f.CompleteProfileRet, f.CompleteProfileErr
}

func (f *fakeClient) Predict(ctx context.Context, image []byte, filename string, symptoms map[string]any) (*models.TestResult, error) {
	f.PredictCalls++
	f.LastImage = append([]byte(nil), image...)
	f.LastFilename = filename
	f.LastSymptoms = symptoms
	return f.PredictRet, f.PredictErr
}

func (f *fakeClient) History(ctx context.Context) ([]models.TestResult, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) DoctorDashboard(ctx context.Context, stateFilter string) (*models.Dashboard, error) {
	f.LastStateFilt = stateFilter
	return f.DashboardRet, f.DashboardErr
}

func (f *fakeClient) Report(ctx context.Context, id int64) ([]byte, error) {
	f.LastReportID = id
	return f.ReportRet, f.ReportErr
}

func (f *fakeClient) EmailReport(ctx context.Context, id int64) error {
	f.LastReportID = id
	return f.EmailReportErr
}

func (f *fakeClient) Stats(ctx context.Context) (*models.Stats, error) {
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return f.AppointmentsRet, f.AppointmentsErr
}

func (f *fakeClient) BookAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	f.LastBook = in
	return f.BookRet, f.BookErr
}

func (f *fakeClient) CancelAppointment(ctx context.Context, id string) error {
	f.LastCancel = id
	return f.CancelErr
}

func (f *fakeClient) Doctors(ctx context.Context) ([]models.Doctor, error) {
	return f.DoctorsRet, f.DoctorsErr
}

func (f *fakeClient) Close() error { return nil }
