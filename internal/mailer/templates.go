package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Template names.
const (
	TemplateWelcome       = "welcome"
	TemplatePasswordReset = "passwordReset"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<h2>Welcome to the Natours Family, {{.FirstName}}!</h2>
<p>We're glad to have you. Start by uploading a photo on your account page.</p>
<p><a href="{{.URL}}">Upload user photo</a></p>{{end}}
{{define "passwordReset"}}<h2>Hi {{.FirstName}},</h2>
<p>Forgot your password? Submit a PATCH request with your new password and passwordConfirm to:</p>
<p><a href="{{.URL}}">{{.URL}}</a></p>
<p>If you didn't forget your password, please ignore this email.</p>{{end}}
`))

var subjects = map[string]string{
	TemplateWelcome:       "Welcome to the Natours Family!",
	TemplatePasswordReset: "Your password reset token (valid for only 10 minutes)",
}

var plainText = map[string]string{
	TemplateWelcome:       "Welcome to the Natours Family, %s! Upload a photo at %s",
	TemplatePasswordReset: "Hi %s, forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s\nIf you didn't forget your password, please ignore this email.",
}

// HasTemplate reports whether name is a known template.
func HasTemplate(name string) bool {
	_, ok := subjects[name]
	return ok
}

// Render builds the message for a named template.
func Render(name, to, fullName, url string) (Message, error) {
	subject, ok := subjects[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown email template %q", name)
	}

	var firstName string
	if parts := strings.Fields(fullName); len(parts) > 0 {
		firstName = parts[0]
	}
	var html bytes.Buffer
	if err := templates.ExecuteTemplate(&html, name, struct {
		FirstName string
		URL       string
	}{firstName, url}); err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: subject,
		Text:    fmt.Sprintf(plainText[name], firstName, url),
		HTML:    strings.TrimSpace(html.String()),
	}, nil
}
