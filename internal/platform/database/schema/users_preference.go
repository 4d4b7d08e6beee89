package schema

// UsersPreferenceTable represents the 'users.preference' table
type UsersPreferenceTable struct {
	Table     string
	UserID    string
	Theme     string
	KidMode   string
	UpdatedAt string
}

// UsersPreference is the schema definition for users.preference
var UsersPreference = UsersPreferenceTable{
	Table:     "users.preference",
	UserID:    "userid",
	Theme:     "theme",
	KidMode:   "kidmode",
	UpdatedAt: "updatedat",
}
