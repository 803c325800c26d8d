package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/xavierca1/leadpilot/internal/entity"
)

type GenerateOutreachUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Audits       entity.AuditRepositoryInterface
	EmailService EmailService
	DefaultFrom  string
}

func NewGenerateOutreachUseCase(
	leads entity.LeadRepositoryInterface,
	audits entity.AuditRepositoryInterface,
	emailService EmailService,
	defaultFrom string,
) *GenerateOutreachUseCase {
	return &GenerateOutreachUseCase{
		Leads:        leads,
		Audits:       audits,
		EmailService: emailService,
		DefaultFrom:  defaultFrom,
	}
}

// Execute drafts a cold email from the lead and its latest audit. With Send
// set the email goes out and the lead moves to CONTACTED.
func (uc *GenerateOutreachUseCase) Execute(ctx context.Context, input GenerateOutreachInput) (*entity.Outreach, error) {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}

	audit, err := uc.Audits.FindLatestByLeadID(ctx, lead.ID)
	if err != nil && !errors.Is(err, entity.ErrAuditNotFound) {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to load audit", Err: err}
	}

	data := outreachData{
		Lead: outreachLead{
			Name: lead.Name,
			City: lead.City,
			Site: strings.TrimPrefix(lead.URLKey, "https://"),
		},
		SenderName:    strings.TrimSpace(input.SenderName),
		SenderCompany: strings.TrimSpace(input.SenderCompany),
	}
	if data.SenderName == "" {
		data.SenderName = uc.DefaultFrom
	}

	if audit != nil {
		data.HasAudit = true
		data.Overall = audit.OverallScore
		data.Design = audit.DesignScore
		data.SEO = audit.SEOScore
		data.Summary = audit.Summary
		data.Issues = audit.Issues
		if len(data.Issues) > maxOutreachIssues {
			data.Issues = data.Issues[:maxOutreachIssues]
		}
	}

	var subject, body bytes.Buffer
	if err := outreachSubject.Execute(&subject, data); err != nil {
		return nil, &TechnicalError{Code: "TEMPLATE_ERROR", Message: "failed to render subject", Err: err}
	}
	if err := outreachBody.Execute(&body, data); err != nil {
		return nil, &TechnicalError{Code: "TEMPLATE_ERROR", Message: "failed to render body", Err: err}
	}

	html, err := markdownToHTML(body.Bytes())
	if err != nil {
		return nil, &TechnicalError{Code: "TEMPLATE_ERROR", Message: "failed to render html body", Err: err}
	}

	outreach := &entity.Outreach{
		LeadID:       lead.ID,
		Subject:      subject.String(),
		BodyMarkdown: body.String(),
		BodyHTML:     html,
	}

	if !input.Send {
		return outreach, nil
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		to = lead.Email
	}
	if to == "" || !isValidEmail(to) {
		return nil, ValidationErrors{{Field: "to", Message: "a valid recipient is required to send"}}
	}

	if uc.EmailService == nil {
		return nil, ErrMailNotConfigured
	}

	if err := uc.EmailService.SendOutreach(to, outreach.Subject, outreach.BodyMarkdown, outreach.BodyHTML); err != nil {
		return nil, &TechnicalError{Code: "MAIL_ERROR", Message: "failed to send outreach email", Err: err}
	}

	if err := uc.Leads.UpdateStatus(ctx, lead.ID, entity.StatusContacted); err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to update lead status", Err: err}
	}

	now := time.Now()
	outreach.To = to
	outreach.Sent = true
	outreach.SentAt = &now

	log.Info().Str("lead_id", lead.ID).Str("to", to).Msg("outreach sent")

	return outreach, nil
}

func markdownToHTML(md []byte) (string, error) {
	var buf bytes.Buffer

	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert(md, &buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
