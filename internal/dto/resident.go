package dto

// ResidentRequest creates or replaces a resident record.
type ResidentRequest struct {
	NIK           string `json:"nik" validate:"required,len=16,numeric"`
	FullName      string `json:"full_name" validate:"required"`
	Gender        string `json:"gender" validate:"required,oneof=L P"`
	BirthPlace    string `json:"birth_place"`
	BirthDate     string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Religion      string `json:"religion"`
	MaritalStatus string `json:"marital_status"`
	Occupation    string `json:"occupation"`
	Address       string `json:"address"`
	RT            string `json:"rt"`
	RW            string `json:"rw"`
}

// ResidentQuery filters resident listings.
type ResidentQuery struct {
	Search string `form:"search"`
	RT     string `form:"rt"`
	RW     string `form:"rw"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
