package grpc

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Person is a person as returned to API clients, age included.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         int    `json:"age"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []Person `json:"people"`
}

type AddPersonRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

type AddPersonResponse struct {
	Person Person `json:"person"`
}

type UpdatePersonRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

type UpdatePersonResponse struct {
	Person Person `json:"person"`
}

type DeletePersonRequest struct {
	ID int64 `json:"id"`
}

type DeletePersonResponse struct {
	Deleted bool `json:"deleted"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
