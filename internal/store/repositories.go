package store

// Repositories groups the repositories bound to one [Querier], either the
// connection pool or an open transaction.
type Repositories struct {
	Users       UserRepository
	Contacts    ContactRepository
	Categories  CategoryRepository
	Memberships MembershipRepository
}

func newRepositories(c *conn) *Repositories {
	return &Repositories{
		Users:       &userRepository{conn: c},
		Contacts:    &contactRepository{conn: c},
		Categories:  &categoryRepository{conn: c},
		Memberships: &membershipRepository{conn: c},
	}
}
