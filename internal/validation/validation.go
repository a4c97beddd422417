// Package validation checks raw request inputs against per-operation rule sets
// and reports failures as a field-to-message map.
package validation

import (
	"fmt"
	"net/url"
	"strings"

	"devconnect-service/internal/models"
)

// Errors maps field names to human-readable messages. A nil *Errors means the
// input passed its rule set.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) add(field, msg string) {
	e[field] = msg
}

func (e Errors) orNil() *Errors {
	if len(e) == 0 {
		return nil
	}
	return &e
}

// ValidateProfileInput applies the profile rule set to the fields actually
// submitted. Fields left absent (nil) are not checked; a field submitted empty
// is a real value and is validated.
func ValidateProfileInput(in *models.ProfileInput) *Errors {
	errs := Errors{}

	if in.Handle != nil {
		if l := len(*in.Handle); l < 2 || l > 40 {
			errs.add("handle", "Handle needs to be between 2 and 40 characters")
		}
	}

	if in.Website != nil && *in.Website != "" && !isValidURL(*in.Website) {
		errs.add("website", "Not a valid URL")
	}

	social := map[string]*string{
		"youtube":   in.Youtube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.Linkedin,
		"instagram": in.Instagram,
	}
	for field, value := range social {
		if value != nil && *value != "" && !isValidURL(*value) {
			errs.add(field, "Not a valid URL")
		}
	}

	return errs.orNil()
}

// ValidateNewProfileInput applies the stricter rule set for first-time profile
// creation on top of the shared field rules. Handle, status and skills are
// required when the profile does not exist yet; on later submissions an absent
// field just leaves the stored value alone.
func ValidateNewProfileInput(in *models.ProfileInput) *Errors {
	errs := Errors{}
	if shared := ValidateProfileInput(in); shared != nil {
		for field, msg := range *shared {
			errs.add(field, msg)
		}
	}

	if in.Handle == nil || strings.TrimSpace(*in.Handle) == "" {
		errs.add("handle", "Profile handle is required")
	}
	if in.Status == nil || strings.TrimSpace(*in.Status) == "" {
		errs.add("status", "Status field is required")
	}
	if in.Skills == nil || strings.TrimSpace(*in.Skills) == "" {
		errs.add("skills", "Skills field is required")
	}

	return errs.orNil()
}

func ValidateExperienceInput(in *models.ExperienceInput) *Errors {
	errs := Errors{}

	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "Job title field is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		errs.add("company", "Company field is required")
	}
	if strings.TrimSpace(in.From) == "" {
		errs.add("from", "From date field is required")
	}

	return errs.orNil()
}

func ValidateEducationInput(in *models.EducationInput) *Errors {
	errs := Errors{}

	if strings.TrimSpace(in.School) == "" {
		errs.add("school", "School field is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		errs.add("degree", "Degree field is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		errs.add("fieldOfStudy", "Field of study field is required")
	}
	if strings.TrimSpace(in.From) == "" {
		errs.add("from", "From date field is required")
	}

	return errs.orNil()
}

func ValidateRegisterInput(in *models.RegisterInput) *Errors {
	errs := Errors{}

	if l := len(strings.TrimSpace(in.Name)); l < 2 || l > 30 {
		errs.add("name", "Name must be between 2 and 30 characters")
	}
	if !isValidEmail(in.Email) {
		errs.add("email", "Email is invalid")
	}
	if len(in.Password) < 6 {
		errs.add("password", "Password must be at least 6 characters")
	}

	return errs.orNil()
}

func ValidateLoginInput(in *models.LoginInput) *Errors {
	errs := Errors{}

	if !isValidEmail(in.Email) {
		errs.add("email", "Email is invalid")
	}
	if in.Password == "" {
		errs.add("password", "Password field is required")
	}

	return errs.orNil()
}

func ValidatePostText(text string) *Errors {
	errs := Errors{}

	if strings.TrimSpace(text) == "" {
		errs.add("text", "Text field is required")
	} else if l := len(text); l < 6 || l > 300 {
		errs.add("text", "Post must be between 6 and 300 characters")
	}

	return errs.orNil()
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidEmail(email string) bool {
	if len(email) < 3 {
		return false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}

	local, domain := parts[0], parts[1]
	if len(local) == 0 || len(domain) == 0 {
		return false
	}

	return strings.Contains(domain, ".")
}
