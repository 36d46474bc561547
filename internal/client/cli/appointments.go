package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

const apptTimeLayout = "2006-01-02 15:04"

// ShowAppointments lists the user's scheduled consultations.
func (a *App) ShowAppointments(ctx context.Context) error {
	items, err := a.appointments.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No appointments.")
		return nil
	}
	for _, ap := range items {
		who := ap.DoctorName
		if who == "" {
			who = ap.PatientName
		}
		printlnFn(fmt.Sprintf("[%s] %s  %s  %s",
			ap.ID, ap.ScheduledAt.Format(apptTimeLayout), who, ap.Status))
	}
	return nil
}

// BookAppointment walks the patient through booking a consultation: pick a
// doctor from the listing, choose a time, state a reason.
func (a *App) BookAppointment(ctx context.Context) error {
	if err := a.ShowDoctors(ctx); err != nil {
		return err
	}

	doctorID, err := getSimpleText(a.reader, "Doctor id", os.Stdout)
	if err != nil {
		return err
	}
	when, err := getSimpleText(a.reader, "Date and time ("+apptTimeLayout+")", os.Stdout)
	if err != nil {
		return err
	}
	at, err := time.ParseInLocation(apptTimeLayout, when, time.Local)
	if err != nil {
		return fmt.Errorf("unrecognized time %q, expected %s", when, apptTimeLayout)
	}
	reason, err := getSimpleText(a.reader, "Reason for the visit", os.Stdout)
	if err != nil {
		return err
	}

	ap, err := a.appointments.Book(ctx, doctorID, at, reason)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Booked appointment %s for %s.", ap.ID, ap.ScheduledAt.Format(apptTimeLayout)))
	return nil
}

// CancelAppointment cancels one appointment by id.
func (a *App) CancelAppointment(ctx context.Context, id string) error {
	if err := a.appointments.Cancel(ctx, id); err != nil {
		return err
	}
	printlnFn("Appointment cancelled.")
	return nil
}

// ShowDoctors lists the bookable doctors.
func (a *App) ShowDoctors(ctx context.Context) error {
	doctors, err := a.appointments.Doctors(ctx)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		printlnFn("No doctors available.")
		return nil
	}
	for _, d := range doctors {
		loc := d.City
		if d.State != "" {
			loc = loc + ", " + d.State
		}
		printlnFn(fmt.Sprintf("[%s] %s  %s", d.ID, d.FullName, loc))
	}
	return nil
}
