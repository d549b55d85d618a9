package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// guestForm is the multipart form payload shared by create and update. The
// optional photo file travels alongside it and is read separately.
type guestForm struct {
	Name            string `form:"name"  validate:"required"`
	Class           string `form:"class" validate:"required,oneof=VIP A B C D Lokal"`
	Alcohol         string `form:"alcohol"`
	Cigarette       string `form:"cigarette"`
	Cigar           string `form:"cigar"`
	SpecialRequests string `form:"special_requests"`
	OtherInfo       string `form:"other_info"`
}

// visitRequest carries a new visit note. Notes may be empty.
type visitRequest struct {
	Notes string `json:"notes"`
}
