// Package phonenumber parses user-entered telephone numbers into a country
// aware PhoneNumber and formats them back as E.164, international, national
// or RFC3966 text.
//
// Parsing and formatting are pure. The only shared state is the rule table
// returned by metadata.Default, which is built once and never modified.
package phonenumber

import "github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"

// Init builds the embedded rule table. Calling it is optional; the table is
// also built on first use. It is safe to call more than once.
func Init() error {
	_, err := metadata.Default()
	return err
}

// database returns db, or the embedded rule table when db is nil.
func database(db *metadata.Database) (*metadata.Database, error) {
	if db != nil {
		return db, nil
	}
	return metadata.Default()
}
