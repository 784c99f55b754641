package services

import "github.com/google/uuid"

func newID() string {
	return uuid.NewString()
}

// validID reports whether id can be stored in a UUID column. Ids that are
// not UUIDs cannot match any row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
