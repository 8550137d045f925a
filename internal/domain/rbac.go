package domain

// EnforceRequest is the authorization question asked by route middleware.
type EnforceRequest struct {
	EmployeeID string
	Resource   string
	Action     string
}
