package cli

import (
	"context"
	"fmt"
)

// ShowDashboard prints the doctor dashboard: aggregate counts plus the
// screening records, optionally filtered by patient state.
func (a *App) ShowDashboard(ctx context.Context, stateFilter string) error {
	d, err := a.doctors.Dashboard(ctx, stateFilter)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Screenings: %d total, %d positive, %d negative",
		d.Stats.Total, d.Stats.Positive, d.Stats.Negative))
	if len(d.Records) == 0 {
		printlnFn("No records.")
		return nil
	}
	for _, r := range d.Records {
		printlnFn(fmt.Sprintf("[%d] %s  %-20s %-10s %-8s %.1f%%",
			r.ID, r.DateTested.Format("2006-01-02"), r.PatientName, r.PatientState,
			r.Result, r.Confidence*100))
	}
	return nil
}
