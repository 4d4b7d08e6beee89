package schema

// LibraryBookTable represents the 'library.book' table
type LibraryBookTable struct {
	Table       string
	ID          string
	UserID      string
	Title       string
	Author      string
	Slug        string
	TotalPages  string
	CurrentPage string
	Status      string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// LibraryBook is the schema definition for library.book
var LibraryBook = LibraryBookTable{
	Table:       "library.book",
	ID:          "id",
	UserID:      "userid",
	Title:       "title",
	Author:      "author",
	Slug:        "slug",
	TotalPages:  "totalpages",
	CurrentPage: "currentpage",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}
