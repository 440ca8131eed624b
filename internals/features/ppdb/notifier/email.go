package notifier

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"sekolahku_backend/internals/features/ppdb/model"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// Email mengirim kabar perubahan status ke email pendaftar (bila ada).
type Email struct {
	key    string
	from   *sgmail.Email
	school string
	host   string
}

func NewEmail(key, fromName, fromEmail, school string) (*Email, error) {
	if key == "" || fromEmail == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY / MAIL_FROM belum diset")
	}
	if fromName == "" {
		fromName = school
	}
	return &Email{key: key, from: sgmail.NewEmail(fromName, fromEmail), school: school, host: sendgridHost}, nil
}

func (e *Email) build(r *model.RegistrationModel) *sgmail.SGMailV3 {
	title, body := StatusText(e.school, r)

	p := sgmail.NewPersonalization()
	p.Subject = "[" + e.school + "] " + title
	p.AddTos(sgmail.NewEmail(r.FullName, *r.Email))

	m := sgmail.NewV3Mail()
	m.SetFrom(e.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", body),
		sgmail.NewContent("text/html", "<p>"+html.EscapeString(body)+"</p>"),
	)
	return m
}

func (e *Email) NotifyStatus(ctx context.Context, r *model.RegistrationModel) error {
	if r.Email == nil || *r.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	req := sendgrid.GetRequest(e.key, sendgridEndpoint, e.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(e.build(r))

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
