package request

// UpdateProfileRequest edits the business profile; omitted fields are unchanged
type UpdateProfileRequest struct {
	BusinessName  *string `json:"business_name" binding:"omitempty,min=2,max=255"`
	OwnerName     *string `json:"owner_name" binding:"omitempty,max=255"`
	Category      *string `json:"category" binding:"omitempty,max=50"`
	Mobile        *string `json:"mobile"`
	Email         *string `json:"email" binding:"omitempty,email"`
	GSTIN         *string `json:"gstin"`
	Address       *string `json:"address"`
	District      *string `json:"district" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=100"`
	Pincode       *string `json:"pincode" binding:"omitempty,len=6,numeric"`
	UPIID         *string `json:"upi_id" binding:"omitempty,max=100"`
	LogoURL       *string `json:"logo_url" binding:"omitempty,url"`
	InvoiceFooter *string `json:"invoice_footer" binding:"omitempty,max=500"`
	FinancialYear *string `json:"financial_year" binding:"omitempty,max=10"`
}
