package models

// Addon is a named, priced line of a quote. Price is a display currency
// string such as "₹1,234.00".
type Addon struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type BaseVideo struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// GenerateVideoRequest is the payload of POST /videos/generate.
type GenerateVideoRequest struct {
	ClientName     string    `json:"clientName"`
	PlanName       string    `json:"planName"`
	SumInsured     float64   `json:"sumInsured"`
	CoverType      string    `json:"coverType"`
	Notes          string    `json:"notes,omitempty"`
	BaseVideo      BaseVideo `json:"baseVideo"`
	SelectedVideos []int     `json:"selectedVideos"`
	Addons         []Addon   `json:"addons"`
	TaxRate        float64   `json:"taxRate"`
	Subtotal       float64   `json:"subtotal"`
	Tax            float64   `json:"tax"`
	Total          float64   `json:"total"`
}

type GenerateResult struct {
	Message     string
	DownloadURL string
}
