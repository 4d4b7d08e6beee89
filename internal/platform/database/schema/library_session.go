package schema

// LibrarySessionTable represents the 'library.session' table
type LibrarySessionTable struct {
	Table           string
	ID              string
	BookID          string
	ReadOn          string
	PagesRead       string
	DurationSeconds string
	CreatedAt       string
	UpdatedAt       string
}

// LibrarySession is the schema definition for library.session
var LibrarySession = LibrarySessionTable{
	Table:           "library.session",
	ID:              "id",
	BookID:          "bookid",
	ReadOn:          "readon",
	PagesRead:       "pagesread",
	DurationSeconds: "durationseconds",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}
