package admin

// Constants for error messages
const (
	ErrContestNotFound      = "Contest not found"
	ErrUserNotFound         = "User not found"
	ErrEntryNotFound        = "Entry not found"
	ErrClassNotFound        = "Class not found"
	ErrInvalidDate          = "Dates must be in YYYY-MM-DD format"
	ErrDatesIncoherent      = "Collection end must not be after review end"
	ErrTitleRequired        = "Title is required"
	ErrTitleTooLong         = "Title exceeds the maximum length"
	ErrShortDescTooLong     = "Short description exceeds the maximum length"
	ErrLongDescTooLong      = "Long description exceeds the maximum length"
	ErrPasswordTooShort     = "Password is too short"
	ErrDuplicateUsername    = "Username already in use"
	ErrDeleteSelf           = "You cannot delete your own account"
	ErrDeleteSuper          = "Super users cannot be deleted"
	ErrDemoteLastSuper      = "The last super user cannot be demoted"
	ErrAlreadyEntered       = "Author already has an entry in this contest"
	ErrEmptyText            = "Entry text must not be empty"
	ErrTextTooLong          = "Entry text exceeds the maximum length"
	ErrFailedCreateContest  = "Failed to create contest"
	ErrFailedUpdateContest  = "Failed to update contest"
	ErrFailedDeleteContest  = "Failed to delete contest"
	ErrFailedFetchContests  = "Failed to fetch contests"
	ErrFailedCreateUser     = "Failed to create user"
	ErrFailedUpdateUser     = "Failed to update user"
	ErrFailedDeleteUser     = "Failed to delete user"
	ErrFailedFetchUsers     = "Failed to fetch users"
	ErrFailedCreateEntry    = "Failed to create entry"
	ErrFailedUpdateEntry    = "Failed to update entry"
	ErrFailedDeleteEntry    = "Failed to delete entry"
	ErrFailedFetchEntries   = "Failed to fetch entries"
	ErrFailedGeneratePrvKey = "Failed to generate private key"
)

// ContestRequest model for creating and updating contests; dates travel as
// YYYY-MM-DD strings
type ContestRequest struct {
	Title            string `json:"title" binding:"required"`
	ClassID          uint   `json:"class_id" binding:"required"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	Anonymity        bool   `json:"anonymity"`
	PublicReviews    bool   `json:"public_reviews"`
	PublicResults    bool   `json:"public_results"`
	CollectionEnd    string `json:"collection_end" binding:"required"`
	ReviewEnd        string `json:"review_end" binding:"required"`
}

// CreateUserRequest model for admin user creation
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Super    bool   `json:"super"`
}

// UpdateUserRequest model for admin user updates; empty password keeps the
// stored hash
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password"`
	Super    *bool  `json:"super"`
}

// EntryRequest model for admin entry creation and updates
type EntryRequest struct {
	ContestID uint   `json:"contest_id" binding:"required"`
	UserID    uint   `json:"user_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}
