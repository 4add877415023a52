package model

// User is the identity the API returns from a successful client login.
// Only id and username are kept; the session stores it and the booking
// page uses it to scope "my reservations" and to fill userId on new
// bookings.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Credentials is the body of both login endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the body of POST /api/register.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// NewReservation is the body of POST /api/reservations.
type NewReservation struct {
	Name     string   `json:"name"`
	Contact  string   `json:"contact"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	TableIDs []uint64 `json:"table_ids"`
	UserID   uint64   `json:"userId"`
}
