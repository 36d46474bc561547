package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respirex/respirex-client/internal/client/models"
)

func writeTempImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xray.png")
	require.NoError(t, os.WriteFile(path, data, 0o660))
	return path
}

func TestSubmit_SendsImageAndSymptoms(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4e, 0x47}
	path := writeTempImage(t, image)

	fc := &fakeClient{PredictRet: &models.TestResult{ID: 3, Result: "Positive", RiskLevel: "high"}}
	s := NewScreeningService(fc)

	symptoms := map[string]any{"cough": true, "weight_loss": false}
	result, err := s.Submit(context.Background(), path, symptoms)
	require.NoError(t, err)

	assert.Equal(t, image, fc.LastImage)
	assert.Equal(t, "xray.png", fc.LastFilename)
	assert.Equal(t, symptoms, fc.LastSymptoms)
	assert.Equal(t, "Positive", result.Result)
}

func TestSubmit_MissingImage(t *testing.T) {
	fc := &fakeClient{}
	s := NewScreeningService(fc)

	_, err := s.Submit(context.Background(), filepath.Join(t.TempDir(), "missing.png"), nil)
	require.Error(t, err)
	assert.Equal(t, 0, fc.PredictCalls, "no upload must be attempted without an image")
}

func TestSubmit_PredictError(t *testing.T) {
	path := writeTempImage(t, []byte{1})

	fc := &fakeClient{PredictErr: errors.New("model overloaded")}
	s := NewScreeningService(fc)

	_, err := s.Submit(context.Background(), path, nil)
	require.Error(t, err)
}

func TestSaveReport_WritesPDF(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	pdf := []byte("%PDF-1.4 report")
	fc := &fakeClient{ReportRet: pdf}
	s := NewScreeningService(fc)

	path, err := s.SaveReport(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), fc.LastReportID)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestHistory_PassThrough(t *testing.T) {
	fc := &fakeClient{HistoryRet: []models.TestResult{{ID: 1}, {ID: 2}}}
	s := NewScreeningService(fc)

	results, err := s.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
