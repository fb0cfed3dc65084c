package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// contactRepository is the SQL implementation of [ContactRepository].
type contactRepository struct {
	*conn
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (models.Contact, error) {
	var (
		c         models.Contact
		birthDate sql.NullTime
	)

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FirstName,
		&c.LastName,
		&birthDate,
		&c.Address1,
		&c.Address2,
		&c.City,
		&c.State,
		&c.ZipCode,
		&c.Email,
		&c.PhoneNumber,
		&c.ImageType,
		&c.Version,
		&c.CreatedAt,
	)
	if err != nil {
		return models.Contact{}, err
	}

	if birthDate.Valid {
		t := birthDate.Time.UTC()
		c.BirthDate = &t
	}
	c.CreatedAt = c.CreatedAt.UTC()

	return c, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// CreateContact inserts contact and returns it with the generated id,
// version and creation time. CategoryIDs are left to the membership layer.
func (r *contactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	contact.CreatedAt = now()

	query, args, err := buildCreateContactQuery(r.sb, contact)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&contact.ID, &contact.Version); err != nil {
		log.Err(err).
			Str("func", "contactRepository.CreateContact").
			Str("user_id", contact.UserID).
			Msg("failed to insert contact")
		return models.Contact{}, r.wrap(ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "contactRepository.CreateContact").
		Int64("contact_id", contact.ID).
		Msg("contact created")

	return contact, nil
}

// GetContact returns the contact with contactID owned by userID, or
// [ErrContactNotFound].
func (r *contactRepository) GetContact(ctx context.Context, userID string, contactID int64) (models.Contact, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetContactQuery(r.sb, userID, contactID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	contact, err := scanContact(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, ErrContactNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.GetContact").
			Int64("contact_id", contactID).
			Msg("failed to read contact")
		return models.Contact{}, r.wrap(ErrExecutingQuery, err)
	}

	return contact, nil
}

// ListContacts returns the contacts matching filter ordered by last name,
// first name and id. The result is never nil.
func (r *contactRepository) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListContactsQuery(r.sb, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.ListContacts").
			Str("user_id", filter.UserID).
			Int64("category_id", filter.CategoryID).
			Msg("failed to execute query for listing contacts")
		return nil, r.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0, 16)
	for rows.Next() {
		contact, scanErr := scanContact(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "contactRepository.ListContacts").
				Msg("failed to scan contact row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		contacts = append(contacts, contact)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "contactRepository.ListContacts").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return contacts, nil
}

// UpdateContact overwrites the editable fields of contact when
// contact.Version matches the stored version, and returns the stored
// contact with its new version.
//
// Returns [ErrContactNotFound] when the contact does not exist for
// contact.UserID and [ErrVersionConflict] when it exists with another
// version.
func (r *contactRepository) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateContactQuery(r.sb, contact)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var newVersion int64
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&newVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, r.missOrConflict(ctx, contactsTable, contact.UserID, contact.ID, ErrContactNotFound)
	}
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.UpdateContact").
			Int64("contact_id", contact.ID).
			Msg("failed to update contact")
		return models.Contact{}, r.wrap(ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "contactRepository.UpdateContact").
		Int64("contact_id", contact.ID).
		Int64("version", newVersion).
		Msg("contact updated")

	return r.GetContact(ctx, contact.UserID, contact.ID)
}

// DeleteContact removes the contact. Its membership edges go with it.
func (r *contactRepository) DeleteContact(ctx context.Context, userID string, contactID int64) error {
	return r.deleteOwned(ctx, contactsTable, userID, contactID, ErrContactNotFound)
}

// SetContactImage stores image as the photo of the contact.
func (r *contactRepository) SetContactImage(ctx context.Context, userID string, contactID int64, image models.ContactImage) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetContactImageQuery(r.sb, userID, contactID, image)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.SetContactImage").
			Int64("contact_id", contactID).
			Msg("failed to store contact image")
		return r.wrap(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrContactNotFound)
}

// GetContactImage returns the stored photo. Returns [ErrImageNotFound] for
// a contact without a photo.
func (r *contactRepository) GetContactImage(ctx context.Context, userID string, contactID int64) (models.ContactImage, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetContactImageQuery(r.sb, userID, contactID)
	if err != nil {
		return models.ContactImage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var image models.ContactImage
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&image.Data, &image.ContentType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContactImage{}, ErrContactNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.GetContactImage").
			Int64("contact_id", contactID).
			Msg("failed to read contact image")
		return models.ContactImage{}, r.wrap(ErrExecutingQuery, err)
	}

	if len(image.Data) == 0 {
		return models.ContactImage{}, ErrImageNotFound
	}

	return image, nil
}

// deleteOwned deletes row id of table owned by userID, returning notFound
// when nothing matched.
func (c *conn) deleteOwned(ctx context.Context, table, userID string, id int64, notFound error) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteOwnedQuery(c.sb, table, userID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := c.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conn.deleteOwned").
			Str("table", table).
			Int64("id", id).
			Msg("failed to delete row")
		return c.wrap(ErrExecutingStatement, err)
	}

	return expectAffected(res, notFound)
}

// missOrConflict tells a missing row apart from a stale version after a
// versioned UPDATE matched nothing.
func (c *conn) missOrConflict(ctx context.Context, table, userID string, id int64, notFound error) error {
	log := logger.FromContext(ctx)

	query, args, err := buildExistsOwnedQuery(c.sb, table, userID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = c.q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if err != nil {
		return c.wrap(ErrExecutingQuery, err)
	}

	log.Warn().
		Str("func", "conn.missOrConflict").
		Str("table", table).
		Int64("id", id).
		Msg("optimistic lock failed: version mismatch")
	return ErrVersionConflict
}

func expectAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
