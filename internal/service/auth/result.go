package auth

// Result is returned by SignUp and SignIn.
type Result struct {
	AccessToken string
	Email       string
}
