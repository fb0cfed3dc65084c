package service

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/internal/adapter"
	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/internal/validators"
	"github.com/MKhiriev/go-contact-keeper/models"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/email.html
var templatesFS embed.FS

// recipientSeparator joins the addresses handed to the sender.
const recipientSeparator = ";"

type emailComposer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewEmailComposer parses the embedded body template. It panics if the
// template does not parse, which can only happen with a broken build.
func NewEmailComposer() EmailComposer {
	return &emailComposer{
		tmpl:   template.Must(template.ParseFS(templatesFS, "templates/email.html")),
		policy: bluemonday.UGCPolicy(),
	}
}

// emailView is the data the body template renders.
type emailView struct {
	Subject     string
	Message     template.HTML
	GroupName   string
	ContactName string
	SenderName  string
	SenderEmail string
}

// ComposeBody renders the HTML body. The user-written message is sanitized
// with the bluemonday UGC policy and its line breaks are kept as <br>.
func (e *emailComposer) ComposeBody(sender models.AppUser, data models.EmailData) (string, error) {
	message := e.policy.Sanitize(data.Message)
	message = strings.ReplaceAll(strings.ReplaceAll(message, "\r\n", "\n"), "\n", "<br>\n")

	view := emailView{
		Subject:     data.Subject,
		Message:     template.HTML(message),
		GroupName:   data.GroupName,
		ContactName: data.ContactName,
		SenderName:  sender.FullName(),
		SenderEmail: sender.Email,
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering email body failed: %w", err)
	}
	return buf.String(), nil
}

type emailService struct {
	repos     *store.Repositories
	composer  EmailComposer
	sender    adapter.EmailSender
	validator validators.Validator

	logger *logger.Logger
}

// NewEmailService builds the EmailService. A nil sender disables delivery.
func NewEmailService(repos *store.Repositories, composer EmailComposer, sender adapter.EmailSender, logger *logger.Logger) EmailService {
	return &emailService{
		repos:     repos,
		composer:  composer,
		sender:    sender,
		validator: validators.NewValidator(),
		logger:    logger,
	}
}

func (e *emailService) EmailContact(ctx context.Context, userID string, contactID int64, req models.EmailRequest) error {
	log := logger.FromContext(ctx).With().Str("func", "*emailService.EmailContact").Int64("contact_id", contactID).Logger()

	if err := e.prepare(ctx, &req); err != nil {
		return err
	}

	contact, err := e.repos.Contacts.GetContact(ctx, userID, contactID)
	if err != nil {
		return fmt.Errorf("contact lookup failed: %w", err)
	}
	address := strings.TrimSpace(contact.Email)
	if address == "" {
		return ErrContactHasNoEmail
	}

	data := models.EmailData{
		Subject:     req.Subject,
		Message:     req.Message,
		Recipients:  []string{address},
		ContactName: contact.FullName(),
	}
	if err = e.deliver(ctx, userID, data); err != nil {
		log.Err(err).Msg("emailing contact failed")
		return err
	}

	log.Info().Msg("contact emailed")
	return nil
}

func (e *emailService) EmailCategory(ctx context.Context, userID string, categoryID int64, req models.EmailRequest) error {
	log := logger.FromContext(ctx).With().Str("func", "*emailService.EmailCategory").Int64("category_id", categoryID).Logger()

	if err := e.prepare(ctx, &req); err != nil {
		return err
	}

	category, err := e.repos.Categories.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("category lookup failed: %w", err)
	}

	members, err := e.repos.Contacts.ListContacts(ctx, models.ContactFilter{UserID: userID, CategoryID: categoryID})
	if err != nil {
		log.Err(err).Msg("listing members failed")
		return fmt.Errorf("listing category members failed: %w", err)
	}

	recipients := collectRecipients(members)
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	data := models.EmailData{
		Subject:    req.Subject,
		Message:    req.Message,
		Recipients: recipients,
		GroupName:  category.Name,
	}
	if err = e.deliver(ctx, userID, data); err != nil {
		log.Err(err).Msg("emailing category failed")
		return err
	}

	log.Info().Int("recipients", len(recipients)).Msg("category emailed")
	return nil
}

// prepare checks that delivery is possible and the request is valid.
func (e *emailService) prepare(ctx context.Context, req *models.EmailRequest) error {
	if e.sender == nil {
		return ErrMailNotConfigured
	}

	req.Subject = strings.TrimSpace(req.Subject)
	if err := e.validator.Validate(ctx, *req); err != nil {
		return fmt.Errorf("error during email validation: %w", err)
	}
	return nil
}

// deliver composes the body on behalf of userID and hands it to the sender.
func (e *emailService) deliver(ctx context.Context, userID string, data models.EmailData) error {
	sender, err := e.repos.Users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("sender lookup failed: %w", err)
	}

	body, err := e.composer.ComposeBody(sender, data)
	if err != nil {
		return err
	}

	recipients := strings.Join(data.Recipients, recipientSeparator)
	if err = e.sender.Send(ctx, recipients, data.Subject, body); err != nil {
		if errors.Is(err, ErrDelivery) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

// collectRecipients returns the non-empty member addresses in member order,
// dropping case-insensitive duplicates.
func collectRecipients(members []models.Contact) []string {
	seen := make(map[string]struct{}, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		address := strings.TrimSpace(m.Email)
		if address == "" {
			continue
		}
		key := strings.ToLower(address)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, address)
	}
	return out
}
