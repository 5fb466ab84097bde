package entity

// SavedQuery is a named SQL snippet kept for the query console.
type SavedQuery struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// SavedQueriesKey is the fixed storage key for user saved queries.
const SavedQueriesKey = "userQueries"
