package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/models"
)

func TestBook_Valid(t *testing.T) {
	fc := &fakeClient{BookRet: &models.Appointment{ID: "a1", Status: "booked"}}
	s := NewAppointmentService(fc)

	at := time.Now().Add(48 * time.Hour)
	a, err := s.Book(context.Background(), "doc-1", at, "persistent cough")
	require.NoError(t, err)

	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "doc-1", fc.LastBook.DoctorID)
	assert.Equal(t, "persistent cough", fc.LastBook.Reason)
	assert.True(t, at.Equal(fc.LastBook.ScheduledAt))
}

func TestBook_Validation(t *testing.T) {
	s := NewAppointmentService(&fakeClient{})
	ctx := context.Background()

	_, err := s.Book(ctx, "", time.Now().Add(time.Hour), "")
	require.Error(t, err)

	_, err = s.Book(ctx, "doc-1", time.Now().Add(-time.Hour), "")
	require.Error(t, err)
}

func TestCancel_NotFound(t *testing.T) {
	fc := &fakeClient{CancelErr: &api.StatusError{StatusCode: http.StatusNotFound}}
	s := NewAppointmentService(fc)

	err := s.Cancel(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, "gone", fc.LastCancel)
}

func TestDoctors_PassThrough(t *testing.T) {
	fc := &fakeClient{DoctorsRet: []models.Doctor{{ID: "d1", FullName: "Dr. A"}}}
	s := NewAppointmentService(fc)

	items, err := s.Doctors(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dr. A", items[0].FullName)
}
