package db

// Person is a row of the persons table. ID is a storage-internal surrogate
// key and is never exposed through the API; Name is the natural key.
type Person struct {
	ID     int64
	Name   string
	Points int64
}
