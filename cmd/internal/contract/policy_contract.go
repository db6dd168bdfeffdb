package contract

type PolicyResponse struct {
	Version       string `json:"version"`
	Content       string `json:"content"`
	IsActive      bool   `json:"is_active"`
	EffectiveDate string `json:"effective_date"`
	UpdatedAt     string `json:"updated_at"`
}
