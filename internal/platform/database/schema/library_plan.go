package schema

// LibraryPlanTable represents the 'library.plan' table
type LibraryPlanTable struct {
	Table        string
	ID           string
	BookID       string
	PacingMode   string
	StartDate    string
	StartingPage string
	DailyPages   string
	DeadlineDate string
	EndDate      string
	CreatedAt    string
	UpdatedAt    string
}

// LibraryPlan is the schema definition for library.plan
var LibraryPlan = LibraryPlanTable{
	Table:        "library.plan",
	ID:           "id",
	BookID:       "bookid",
	PacingMode:   "pacingmode",
	StartDate:    "startdate",
	StartingPage: "startingpage",
	DailyPages:   "dailypages",
	DeadlineDate: "deadlinedate",
	EndDate:      "enddate",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
