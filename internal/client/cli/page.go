package cli

import "github.com/respirex/respirex-client/internal/client/models"

// Page identifies the view the terminal client is currently rendering.
type Page string

const (
	PageLoading         Page = "loading"
	PageLanding         Page = "landing"
	PageLogin           Page = "login"
	PageSignup          Page = "signup"
	PagePatientHome     Page = "patient-home"
	PageDoctorHome      Page = "doctor-home"
	PageSymptomTest     Page = "symptom-test"
	PageXrayUpload      Page = "xray-upload"
	PageTestResult      Page = "test-result"
	PageTestHistory     Page = "test-history"
	PageAppointments    Page = "appointments"
	PageCompleteProfile Page = "complete-profile"
)

// placeholder reports whether p is a pre-auth page that a completed role
// resolution may replace with the role home. A page the user navigated to
// after signing in is not a placeholder and is never clobbered.
func (p Page) placeholder() bool {
	switch p {
	case PageLoading, PageLanding, PageLogin, PageSignup:
		return true
	}
	return false
}

func roleHome(role models.Role) Page {
	if role == models.RoleDoctor {
		return PageDoctorHome
	}
	return PagePatientHome
}
