package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-contact-keeper/models"
)

const (
	usersTable       = "users"
	contactsTable    = "contacts"
	categoriesTable  = "categories"
	membershipsTable = "contact_categories"
)

var userColumns = []string{"user_id", "email", "password_hash", "first_name", "last_name", "created_at"}

// contactColumns never include image_data; the image is read on its own.
var contactColumns = []string{
	"c.id",
	"c.user_id",
	"c.first_name",
	"c.last_name",
	"c.birth_date",
	"c.address1",
	"c.address2",
	"c.city",
	"c.state",
	"c.zip_code",
	"c.email",
	"c.phone_number",
	"c.image_type",
	"c.version",
	"c.created_at",
}

var categoryColumns = []string{"g.id", "g.user_id", "g.name", "g.version", "g.created_at"}

// now is the creation timestamp written by inserts, at the precision both
// backends keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// contactOrder is the stable listing order of contacts.
var contactOrder = []string{"c.last_name", "c.first_name", "c.id"}

func buildFindUserQuery(sb sq.StatementBuilderType, column, value string) (string, []any, error) {
	return sb.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		ToSql()
}

func buildGetContactQuery(sb sq.StatementBuilderType, userID string, contactID int64) (string, []any, error) {
	return sb.Select(contactColumns...).
		From(contactsTable + " c").
		Where(sq.Eq{"c.id": contactID}).
		Where(sq.Eq{"c.user_id": userID}).
		ToSql()
}

// buildListContactsQuery selects the contacts of filter.UserID, narrowed to
// members of filter.CategoryID when it is set and to contacts matching
// filter.Query when it is not blank.
func buildListContactsQuery(sb sq.StatementBuilderType, filter models.ContactFilter) (string, []any, error) {
	query := sb.Select(contactColumns...).
		From(contactsTable + " c")

	if filter.CategoryID > 0 {
		query = query.
			Join(membershipsTable + " cc ON cc.contact_id = c.id").
			Join(categoriesTable + " g ON g.id = cc.category_id").
			Where(sq.Eq{"cc.category_id": filter.CategoryID}).
			Where(sq.Eq{"g.user_id": filter.UserID})
	}

	query = query.Where(sq.Eq{"c.user_id": filter.UserID})

	if term := strings.TrimSpace(filter.Query); term != "" {
		query = query.Where(searchCondition(term))
	}

	return query.OrderBy(contactOrder...).ToSql()
}

// searchCondition matches term as a case-insensitive substring of any of
// the searchable contact fields. LIKE wildcards inside term match literally.
func searchCondition(term string) sq.Sqlizer {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	fields := []string{
		"c.first_name",
		"c.last_name",
		"c.first_name || ' ' || c.last_name",
		"c.email",
		"c.phone_number",
	}

	or := make(sq.Or, 0, len(fields))
	for _, field := range fields {
		or = append(or, sq.Expr("LOWER("+field+") LIKE ? ESCAPE '\\'", pattern))
	}

	return or
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func buildCreateContactQuery(sb sq.StatementBuilderType, c models.Contact) (string, []any, error) {
	return sb.Insert(contactsTable).
		Columns(
			"user_id",
			"first_name",
			"last_name",
			"birth_date",
			"address1",
			"address2",
			"city",
			"state",
			"zip_code",
			"email",
			"phone_number",
			"created_at",
		).
		Values(
			c.UserID,
			c.FirstName,
			c.LastName,
			nullableTime(c.BirthDate),
			c.Address1,
			c.Address2,
			c.City,
			c.State,
			c.ZipCode,
			c.Email,
			c.PhoneNumber,
			c.CreatedAt,
		).
		Suffix("RETURNING id, version").
		ToSql()
}

// buildUpdateContactQuery bumps the version only when c.Version still
// matches the stored one.
func buildUpdateContactQuery(sb sq.StatementBuilderType, c models.Contact) (string, []any, error) {
	return sb.Update(contactsTable).
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("birth_date", nullableTime(c.BirthDate)).
		Set("address1", c.Address1).
		Set("address2", c.Address2).
		Set("city", c.City).
		Set("state", c.State).
		Set("zip_code", c.ZipCode).
		Set("email", c.Email).
		Set("phone_number", c.PhoneNumber).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": c.ID}).
		Where(sq.Eq{"user_id": c.UserID}).
		Where(sq.Eq{"version": c.Version}).
		Suffix("RETURNING version").
		ToSql()
}

func buildSetContactImageQuery(sb sq.StatementBuilderType, userID string, contactID int64, image models.ContactImage) (string, []any, error) {
	return sb.Update(contactsTable).
		Set("image_data", image.Data).
		Set("image_type", image.ContentType).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": contactID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildGetContactImageQuery(sb sq.StatementBuilderType, userID string, contactID int64) (string, []any, error) {
	return sb.Select("image_data", "image_type").
		From(contactsTable).
		Where(sq.Eq{"id": contactID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildGetCategoryQuery(sb sq.StatementBuilderType, userID string, categoryID int64) (string, []any, error) {
	return sb.Select(categoryColumns...).
		From(categoriesTable + " g").
		Where(sq.Eq{"g.id": categoryID}).
		Where(sq.Eq{"g.user_id": userID}).
		ToSql()
}

func buildListCategoriesQuery(sb sq.StatementBuilderType, userID string) (string, []any, error) {
	return sb.Select(categoryColumns...).
		From(categoriesTable + " g").
		Where(sq.Eq{"g.user_id": userID}).
		OrderBy("g.name", "g.id").
		ToSql()
}

func buildUpdateCategoryQuery(sb sq.StatementBuilderType, c models.Category) (string, []any, error) {
	return sb.Update(categoriesTable).
		Set("name", c.Name).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": c.ID}).
		Where(sq.Eq{"user_id": c.UserID}).
		Where(sq.Eq{"version": c.Version}).
		Suffix("RETURNING version").
		ToSql()
}

func buildOwnedCategoryIDsQuery(sb sq.StatementBuilderType, userID string, ids []int64) (string, []any, error) {
	return sb.Select("id").
		From(categoriesTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		ToSql()
}

func buildDeleteOwnedQuery(sb sq.StatementBuilderType, table, userID string, id int64) (string, []any, error) {
	return sb.Delete(table).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildExistsOwnedQuery(sb sq.StatementBuilderType, table, userID string, id int64) (string, []any, error) {
	return sb.Select("1").
		From(table).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildIsMemberQuery(sb sq.StatementBuilderType, userID string, categoryID, contactID int64) (string, []any, error) {
	return sb.Select("1").
		From(membershipsTable + " cc").
		Join(contactsTable + " c ON c.id = cc.contact_id").
		Join(categoriesTable + " g ON g.id = cc.category_id").
		Where(sq.Eq{"cc.contact_id": contactID}).
		Where(sq.Eq{"cc.category_id": categoryID}).
		Where(sq.Eq{"c.user_id": userID}).
		Where(sq.Eq{"g.user_id": userID}).
		ToSql()
}

// buildAddMembershipQuery inserts the edge only when both rows exist and
// belong to userID. An existing edge is left untouched.
func buildAddMembershipQuery(sb sq.StatementBuilderType, userID string, categoryID, contactID int64) (string, []any, error) {
	owned := sq.Select("c.id", "g.id").
		From(contactsTable + " c").
		Join(categoriesTable + " g ON g.user_id = c.user_id").
		Where(sq.Eq{"c.id": contactID}).
		Where(sq.Eq{"g.id": categoryID}).
		Where(sq.Eq{"c.user_id": userID})

	return sb.Insert(membershipsTable).
		Columns("contact_id", "category_id").
		Select(owned).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
}

func buildRemoveMembershipQuery(sb sq.StatementBuilderType, userID string, categoryID, contactID int64) (string, []any, error) {
	return sb.Delete(membershipsTable).
		Where(sq.Eq{"contact_id": contactID}).
		Where(sq.Eq{"category_id": categoryID}).
		Where(sq.Expr("category_id IN (SELECT id FROM "+categoriesTable+" WHERE user_id = ?)", userID)).
		ToSql()
}

func buildCategoriesForContactQuery(sb sq.StatementBuilderType, userID string, contactID int64) (string, []any, error) {
	return sb.Select(categoryColumns...).
		From(categoriesTable + " g").
		Join(membershipsTable + " cc ON cc.category_id = g.id").
		Where(sq.Eq{"cc.contact_id": contactID}).
		Where(sq.Eq{"g.user_id": userID}).
		OrderBy("g.name", "g.id").
		ToSql()
}

func buildCategoryIDsForContactQuery(sb sq.StatementBuilderType, userID string, contactID int64) (string, []any, error) {
	return sb.Select("g.id").
		From(categoriesTable + " g").
		Join(membershipsTable + " cc ON cc.category_id = g.id").
		Where(sq.Eq{"cc.contact_id": contactID}).
		Where(sq.Eq{"g.user_id": userID}).
		OrderBy("g.id").
		ToSql()
}
