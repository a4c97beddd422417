package validation

import (
	"testing"

	"devconnect-service/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateProfileInput(t *testing.T) {
	tests := []struct {
		name       string
		input      *models.ProfileInput
		wantFields []string
	}{
		{
			name:       "empty input is valid",
			input:      &models.ProfileInput{},
			wantFields: nil,
		},
		{
			name: "valid full input",
			input: &models.ProfileInput{
				Handle:  strPtr("alice"),
				Website: strPtr("https://alice.dev"),
				Twitter: strPtr("https://twitter.com/alice"),
			},
			wantFields: nil,
		},
		{
			name:       "handle too short",
			input:      &models.ProfileInput{Handle: strPtr("a")},
			wantFields: []string{"handle"},
		},
		{
			name:       "absent handle is not checked",
			input:      &models.ProfileInput{Company: strPtr("Acme")},
			wantFields: nil,
		},
		{
			name:       "website must be a URL",
			input:      &models.ProfileInput{Website: strPtr("not a url")},
			wantFields: []string{"website"},
		},
		{
			name:       "website without scheme rejected",
			input:      &models.ProfileInput{Website: strPtr("alice.dev")},
			wantFields: []string{"website"},
		},
		{
			name:       "empty website clears the field",
			input:      &models.ProfileInput{Website: strPtr("")},
			wantFields: nil,
		},
		{
			name: "social links checked individually",
			input: &models.ProfileInput{
				Twitter:  strPtr("nope"),
				Linkedin: strPtr("https://linkedin.com/in/alice"),
			},
			wantFields: []string{"twitter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateProfileInput(tt.input)
			checkFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateNewProfileInput(t *testing.T) {
	tests := []struct {
		name       string
		input      *models.ProfileInput
		wantFields []string
	}{
		{
			name: "valid creation input",
			input: &models.ProfileInput{
				Handle: strPtr("alice"),
				Status: strPtr("Developer"),
				Skills: strPtr("js,node"),
			},
			wantFields: nil,
		},
		{
			name:       "all required fields missing",
			input:      &models.ProfileInput{},
			wantFields: []string{"handle", "status", "skills"},
		},
		{
			name: "blank skills rejected",
			input: &models.ProfileInput{
				Handle: strPtr("alice"),
				Status: strPtr("Developer"),
				Skills: strPtr("   "),
			},
			wantFields: []string{"skills"},
		},
		{
			name: "shared rules still apply",
			input: &models.ProfileInput{
				Handle:  strPtr("a"),
				Status:  strPtr("Developer"),
				Skills:  strPtr("js"),
				Website: strPtr("nope"),
			},
			wantFields: []string{"handle", "website"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateNewProfileInput(tt.input)
			checkFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateExperienceInput(t *testing.T) {
	errs := ValidateExperienceInput(&models.ExperienceInput{Title: "Engineer"})
	checkFields(t, errs, []string{"company", "from"})

	errs = ValidateExperienceInput(&models.ExperienceInput{
		Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	checkFields(t, errs, nil)
}

func TestValidateEducationInput(t *testing.T) {
	errs := ValidateEducationInput(&models.EducationInput{School: "MIT"})
	checkFields(t, errs, []string{"degree", "fieldOfStudy", "from"})

	errs = ValidateEducationInput(&models.EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2014-09-01",
	})
	checkFields(t, errs, nil)
}

func TestValidateRegisterInput(t *testing.T) {
	tests := []struct {
		name       string
		input      *models.RegisterInput
		wantFields []string
	}{
		{
			name:       "valid",
			input:      &models.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"},
			wantFields: nil,
		},
		{
			name:       "short name",
			input:      &models.RegisterInput{Name: "A", Email: "alice@example.com", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "bad email",
			input:      &models.RegisterInput{Name: "Alice", Email: "alice", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "email without dot in domain",
			input:      &models.RegisterInput{Name: "Alice", Email: "alice@localhost", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			input:      &models.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "12345"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegisterInput(tt.input)
			checkFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateLoginInput(t *testing.T) {
	errs := ValidateLoginInput(&models.LoginInput{})
	checkFields(t, errs, []string{"email", "password"})

	errs = ValidateLoginInput(&models.LoginInput{Email: "alice@example.com", Password: "secret1"})
	checkFields(t, errs, nil)
}

func TestValidatePostText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantFields []string
	}{
		{"valid", "hello world", nil},
		{"empty", "", []string{"text"}},
		{"whitespace only", "   ", []string{"text"}},
		{"too short", "hi", []string{"text"}},
		{"at minimum length", "sixsix", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePostText(tt.text)
			checkFields(t, errs, tt.wantFields)
		})
	}
}

func checkFields(t *testing.T, errs *Errors, want []string) {
	t.Helper()

	if len(want) == 0 {
		if errs != nil {
			t.Errorf("Expected no errors, got %v", *errs)
		}
		return
	}

	if errs == nil {
		t.Fatalf("Expected errors on %v, got none", want)
	}
	if len(*errs) != len(want) {
		t.Errorf("Expected %d errors, got %v", len(want), *errs)
	}
	for _, field := range want {
		if _, ok := (*errs)[field]; !ok {
			t.Errorf("Expected error on %s, got %v", field, *errs)
		}
	}
}
