package entities

// Application routes
const (
	RouteSignup  = "/signup"
	RouteAccount = "/account"
	RouteSample  = "/sampe-page"
)

// Messages rendered by the application under test
const (
	MessageSignupSuccess     = "Signup successful! Please check your email to verify your account."
	MessageSampleSuccess     = "Signup successful!"
	MessageInvalidEmail      = "Invalid email format"
	MessagePasswordsMismatch = "Passwords do not match"
)

// DefaultFullName is the name submitted when none is given
const DefaultFullName = "Test User"
