package cli

import (
	"context"
	"fmt"
	"os"
)

// symptomQuestions is the intake questionnaire submitted with the X-ray.
// Keys match the backend's symptoms_data fields.
var symptomQuestions = []struct {
	key    string
	prompt string
}{
	{"cough", "Do you have a persistent cough?"},
	{"fever", "Have you had a fever recently?"},
	{"night_sweats", "Do you experience night sweats?"},
	{"weight_loss", "Have you lost weight without trying?"},
	{"chest_pain", "Do you feel chest pain when breathing or coughing?"},
	{"fatigue", "Do you feel unusually tired?"},
}

// RunSymptomTest walks the patient through the screening flow: the symptom
// questionnaire, then the X-ray upload, then the verdict. The result page is
// reached through Navigate like any other page.
func (a *App) RunSymptomTest(ctx context.Context) error {
	a.Navigate(PageSymptomTest)

	symptoms := make(map[string]any, len(symptomQuestions)+1)
	for _, q := range symptomQuestions {
		answer, err := getYesNo(a.reader, q.prompt, os.Stdout)
		if err != nil {
			return err
		}
		symptoms[q.key] = answer
	}
	if cough, _ := symptoms["cough"].(bool); cough {
		weeks, err := getInt(a.reader, "For how many weeks?", os.Stdout)
		if err != nil {
			return err
		}
		symptoms["cough_duration_weeks"] = weeks
	}

	a.Navigate(PageXrayUpload)

	path, err := getSimpleText(a.reader, "Path to the chest X-ray image", os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Submitting for analysis...")
	result, err := a.screenings.Submit(ctx, path, symptoms)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lastResult = result
	a.mu.Unlock()
	a.Navigate(PageTestResult)
	a.ShowResult()
	return nil
}

// ShowResult prints the most recent screening verdict.
func (a *App) ShowResult() {
	a.mu.Lock()
	r := a.lastResult
	a.mu.Unlock()

	if r == nil {
		printlnFn("No result yet. Run a test first.")
		return
	}
	printlnFn(fmt.Sprintf("Result:     %s", r.Result))
	printlnFn(fmt.Sprintf("Confidence: %.1f%%", r.Confidence*100))
	printlnFn(fmt.Sprintf("Risk level: %s", r.RiskLevel))
	if r.ID != 0 {
		printlnFn(fmt.Sprintf("Record id:  %d (use 'report' / 'email' to get the PDF)", r.ID))
	}
}

// ShowHistory lists the patient's past screenings, newest first.
func (a *App) ShowHistory(ctx context.Context) error {
	items, err := a.screenings.History(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No screenings yet.")
		return nil
	}
	for _, r := range items {
		printlnFn(fmt.Sprintf("[%d] %s  %-8s  %.1f%%  risk=%s",
			r.ID, r.DateTested.Format("2006-01-02"), r.Result, r.Confidence*100, r.RiskLevel))
	}
	return nil
}

// SaveReport downloads the PDF report for one screening.
func (a *App) SaveReport(ctx context.Context, id int64) error {
	path, err := a.screenings.SaveReport(ctx, id)
	if err != nil {
		return err
	}
	printlnFn("Report saved to " + path)
	return nil
}

// EmailReport asks the backend to mail the report to the patient.
func (a *App) EmailReport(ctx context.Context, id int64) error {
	if err := a.screenings.EmailReport(ctx, id); err != nil {
		return err
	}
	printlnFn("Report sent by email.")
	return nil
}

// ShowStats prints the public landing-page counters.
func (a *App) ShowStats(ctx context.Context) error {
	s, err := a.screenings.Stats(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Tests analysed: %d | Patients: %d | Doctors: %d",
		s.TotalTests, s.TotalPatients, s.TotalDoctors))
	return nil
}

// resultID returns the id of the last screening, or 0.
func (a *App) resultID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastResult == nil {
		return 0
	}
	return a.lastResult.ID
}
