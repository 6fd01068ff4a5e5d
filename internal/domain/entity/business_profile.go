package entity

import "time"

// BusinessProfileID is the primary key of the single profile row
const BusinessProfileID = 1

// BusinessProfile is the shop identity printed on invoices
type BusinessProfile struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	BusinessName  string    `gorm:"size:255;not null" json:"business_name"`
	OwnerName     string    `gorm:"size:255" json:"owner_name"`
	Category      string    `gorm:"size:50" json:"category"`
	Mobile        string    `gorm:"size:20" json:"mobile"`
	Email         string    `gorm:"size:255" json:"email,omitempty"`
	GSTIN         string    `gorm:"size:15" json:"gstin,omitempty"`
	Address       string    `gorm:"type:text" json:"address"`
	District      string    `gorm:"size:100" json:"district"`
	State         string    `gorm:"size:100" json:"state"`
	Pincode       string    `gorm:"size:10" json:"pincode"`
	UPIID         string    `gorm:"size:100" json:"upi_id,omitempty"`
	LogoURL       string    `gorm:"size:500" json:"logo_url,omitempty"`
	InvoiceFooter string    `gorm:"size:500" json:"invoice_footer,omitempty"`
	FinancialYear string    `gorm:"size:10" json:"financial_year"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (BusinessProfile) TableName() string {
	return "business_profile"
}

// FullAddress joins the address parts that are set
func (p *BusinessProfile) FullAddress() string {
	out := p.Address
	for _, part := range []string{p.District, p.State} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	if p.Pincode != "" {
		out += " - " + p.Pincode
	}
	return out
}
