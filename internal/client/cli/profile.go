package cli

import (
	"context"
	"os"

	"github.com/respirex/respirex-client/internal/client/models"
)

// CompleteProfile collects the backend profile fields and submits them.
// ProfileMissing routes here; once the profile exists the user lands on the
// home page of the role they picked.
func (a *App) CompleteProfile(ctx context.Context) error {
	role, err := getChoice(a.reader, "I am a", []string{"patient", "doctor"}, os.Stdout)
	if err != nil {
		return err
	}
	state, err := getSimpleText(a.reader, "State", os.Stdout)
	if err != nil {
		return err
	}
	city, err := getSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		return err
	}
	age, err := getInt(a.reader, "Age", os.Stdout)
	if err != nil {
		return err
	}
	gender, err := getChoice(a.reader, "Gender", []string{"female", "male", "other"}, os.Stdout)
	if err != nil {
		return err
	}

	in := models.ProfileInput{
		Role:   models.Role(role),
		State:  state,
		City:   city,
		Age:    age,
		Gender: gender,
	}
	if in.Role == models.RoleDoctor {
		license, err := getSimpleText(a.reader, "Medical license number", os.Stdout)
		if err != nil {
			return err
		}
		in.LicenseNumber = license
	}

	profile, err := a.profiles.Complete(ctx, in)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.role = profile.Role
	a.mu.Unlock()
	a.Navigate(roleHome(profile.Role))
	printlnFn("Profile saved.")
	return nil
}

// ShowProfile prints the backend profile of the signed-in user.
func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.profiles.Get(ctx)
	if err != nil {
		return err
	}
	printlnFn("Name:   " + p.FullName)
	printlnFn("Role:   " + string(p.Role))
	printlnFn("Place:  " + p.City + ", " + p.State)
	if p.LicenseNumber != "" {
		printlnFn("License: " + p.LicenseNumber)
	}
	return nil
}
